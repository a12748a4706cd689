package ir

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Value is a sealed interface over the shapes a style tree can hold.
// Only Null, String, Bool, Number, Array and *Object implement it.
type Value interface {
	styleValue() // Sealed - only these types implement it
}

// Null is an explicit "no value" marker. JSON null, YAML ~ and
// JavaScript undefined all decode to Null.
type Null struct{}

func (Null) styleValue() {}

// String is a string scalar, usually a literal or a token path.
type String string

func (String) styleValue() {}

// Bool is a boolean scalar (utility props such as srOnly: true).
type Bool bool

func (Bool) styleValue() {}

// Number keeps the literal text of a numeric scalar.
// Rendering never goes through float formatting, so "1.50" stays "1.50".
type Number string

func (Number) styleValue() {}

// Array is the responsive shorthand: position 0 is the base value,
// position i the value for breakpoint ordinal i.
type Array []Value

func (Array) styleValue() {}

// Object is an insertion ordered mapping from keys to values.
// Setting an existing key replaces its value but keeps its position.
// The zero value is an empty object ready to use.
type Object struct {
	entries *sequencedmap.Map[string, Value]
}

func (*Object) styleValue() {}

// Pair is a key-value pair for ordered Object construction.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand for Pair.
// Example: NewObject(P("bg", String("red")), P("color", String("blue")))
func P(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewObject creates an Object from pairs in the given order.
// A repeated key keeps its first position and its last value.
func NewObject(pairs ...Pair) *Object {
	obj := &Object{entries: sequencedmap.New[string, Value]()}
	for _, p := range pairs {
		obj.Set(p.Key, p.Value)
	}
	return obj
}

// Set assigns value to key. New keys are appended.
func (o *Object) Set(key string, value Value) {
	if o.entries == nil {
		o.entries = sequencedmap.New[string, Value]()
	}
	o.entries.Set(key, value)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.entries == nil {
		return nil, false
	}
	return o.entries.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil || o.entries == nil {
		return 0
	}
	return o.entries.Len()
}

// All iterates keys and values in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil || o.entries == nil {
			return
		}
		for k, v := range o.entries.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// Clone returns a deep copy of v. Objects and arrays are copied
// recursively; scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Object:
		return val.Clone()
	case Array:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = Clone(elem)
		}
		return arr
	default:
		return v
	}
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	out := NewObject()
	for k, v := range o.All() {
		out.Set(k, Clone(v))
	}
	return out
}

// IsScalar reports whether v is a String, Bool or Number.
func IsScalar(v Value) bool {
	switch v.(type) {
	case String, Bool, Number:
		return true
	default:
		return false
	}
}

// Render returns the text form of a scalar as it appears in a slug,
// before whitespace escaping. ok is false for non-scalars.
func Render(v Value) (text string, ok bool) {
	switch val := v.(type) {
	case String:
		return string(val), true
	case Bool:
		return strconv.FormatBool(bool(val)), true
	case Number:
		return string(val), true
	default:
		return "", false
	}
}

// KindOf names the shape of v for diagnostics.
func KindOf(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Array:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Equal reports structural equality, including key order of objects.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil, Null:
		switch b.(type) {
		case nil, Null:
			return true
		}
		return false
	case String, Bool, Number:
		return a == b
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		bk := bv.Keys()
		i := 0
		for k, v := range av.All() {
			if bk[i] != k {
				return false
			}
			other, _ := bv.Get(k)
			if !Equal(v, other) {
				return false
			}
			i++
		}
		return true
	default:
		return false
	}
}
