package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/stylec/internal/ir"
)

// CompileStyle turns a concrete CUE value into a style value.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// Structs become ordered *ir.Object values in field declaration order,
// lists become ir.Array, and null, string, bool and number become
// scalars. Definitions, hidden and optional fields are ignored.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`_hover: bg: "yellow.200"`)
//	tree, err := CompileStyle(v)
func CompileStyle(v cue.Value) (ir.Value, error) {
	if err := v.Err(); err != nil {
		return nil, cueError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err)
	}
	return compileValue(v)
}

func compileValue(v cue.Value) (ir.Value, error) {
	switch kind := v.Kind(); kind {
	case cue.NullKind:
		return ir.Null{}, nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, cueError(err)
		}
		return ir.String(s), nil

	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, cueError(err)
		}
		return ir.Bool(b), nil

	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		// JSON text of a CUE number is its shortest exact literal
		data, err := v.MarshalJSON()
		if err != nil {
			return nil, cueError(err)
		}
		return ir.Number(data), nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, cueError(err)
		}
		arr := ir.Array{}
		for iter.Next() {
			item, err := compileValue(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		return arr, nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, cueError(err)
		}
		obj := ir.NewObject()
		for iter.Next() {
			key := iter.Selector().Unquoted()
			item, err := compileValue(iter.Value())
			if err != nil {
				return nil, err
			}
			obj.Set(key, item)
		}
		return obj, nil

	default:
		return nil, &CompileError{
			Field:   pathOf(v),
			Message: fmt.Sprintf("unsupported CUE kind %s in a style tree", kind),
			Pos:     v.Pos(),
		}
	}
}

func pathOf(v cue.Value) string {
	if p := v.Path().String(); p != "" {
		return p
	}
	return "(root)"
}
