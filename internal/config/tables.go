package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"github.com/roach88/stylec/internal/ir"
)

// BaseCondition is the condition key of the unprefixed scope.
const BaseCondition = "base"

// ConditionKind classifies a condition key.
type ConditionKind int

const (
	KindBase       ConditionKind = iota // "base": no prefix
	KindPseudo                          // pseudo condition from the preset
	KindBreakpoint                      // breakpoint name from the registry
	KindAtRule                          // verbatim at-rule, e.g. "@media print"
	KindSelector                        // verbatim selector, e.g. "&:hover > span"
	KindArbitrary                       // unknown key without selector syntax
)

var conditionKindNames = [...]string{"base", "pseudo", "breakpoint", "at-rule", "selector", "arbitrary"}

func (k ConditionKind) String() string {
	if int(k) < len(conditionKindNames) {
		return conditionKindNames[k]
	}
	return fmt.Sprintf("ConditionKind(%d)", int(k))
}

// Verbatim reports whether a key of this kind carries its own CSS syntax.
func (k ConditionKind) Verbatim() bool {
	return k == KindAtRule || k == KindSelector
}

// Condition is a resolved condition key.
type Condition struct {
	Key     string        `json:"key"`
	Kind    ConditionKind `json:"kind"`
	Prefix  string        `json:"prefix"`            // empty for base
	Ordinal int           `json:"ordinal,omitempty"` // breakpoint ordinal, 1-based
}

// Property is a resolved entry of the alias table.
type Property struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Tables is the read-only lookup form of a Preset.
// It is built once and safe for concurrent use.
type Tables struct {
	preset      *Preset
	digest      string
	properties  map[string]Property // canonical name or alias -> property
	conditions  map[string]Condition
	breakpoints []Condition
}

// NewTables validates a preset and builds its lookup tables.
// All configuration problems are reported together; the returned error
// combines *ConfigError values (see Errors).
func NewTables(p *Preset) (*Tables, error) {
	t := &Tables{
		preset:     p,
		properties: make(map[string]Property),
		conditions: make(map[string]Condition),
	}

	var errs error
	errs = multierr.Append(errs, t.buildBreakpoints(p))
	errs = multierr.Append(errs, t.buildConditions(p))
	errs = multierr.Append(errs, t.buildProperties(p))

	if p.Separator == "" || strings.IndexFunc(p.Separator, unicode.IsSpace) >= 0 {
		errs = multierr.Append(errs, &ConfigError{
			Code:    ErrInvalidSeparator,
			Field:   "separator",
			Message: fmt.Sprintf("separator %q must be non-empty and free of whitespace", p.Separator),
		})
	}
	if errs != nil {
		return nil, errs
	}

	digest, err := ir.PresetDigest(p.Value())
	if err != nil {
		return nil, err
	}
	t.digest = digest
	return t, nil
}

func (t *Tables) buildBreakpoints(p *Preset) error {
	if len(p.Breakpoints) == 0 {
		return &ConfigError{
			Code:    ErrNoBreakpoints,
			Field:   "breakpoints",
			Message: "breakpoint registry is empty",
		}
	}

	var errs error
	t.conditions[BaseCondition] = Condition{Key: BaseCondition, Kind: KindBase}
	for i, name := range p.Breakpoints {
		field := fmt.Sprintf("breakpoints[%d]", i)
		if name == "" || name == BaseCondition {
			errs = multierr.Append(errs, &ConfigError{
				Code:    ErrConditionCollision,
				Field:   field,
				Message: fmt.Sprintf("%q cannot be used as a breakpoint name", name),
			})
			continue
		}
		if _, dup := t.conditions[name]; dup {
			errs = multierr.Append(errs, &ConfigError{
				Code:    ErrConditionCollision,
				Field:   field,
				Message: fmt.Sprintf("breakpoint %q is listed twice", name),
			})
			continue
		}
		cond := Condition{Key: name, Kind: KindBreakpoint, Prefix: name, Ordinal: i + 1}
		t.conditions[name] = cond
		t.breakpoints = append(t.breakpoints, cond)
	}
	return errs
}

func (t *Tables) buildConditions(p *Preset) error {
	keys := make([]string, 0, len(p.Conditions))
	for k := range p.Conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs error
	for _, key := range keys {
		prefix := p.Conditions[key]
		field := fmt.Sprintf("conditions[%q]", key)
		if key == "" {
			errs = multierr.Append(errs, &ConfigError{Code: ErrConditionCollision, Field: field, Message: "condition key is empty"})
			continue
		}
		if existing, ok := t.conditions[key]; ok {
			errs = multierr.Append(errs, &ConfigError{
				Code:    ErrConditionCollision,
				Field:   field,
				Message: fmt.Sprintf("condition %q clashes with the %s condition of the same name", key, existing.Kind),
			})
			continue
		}
		if prefix == "" {
			errs = multierr.Append(errs, &ConfigError{Code: ErrEmptyPrefix, Field: field, Message: "condition prefix is empty"})
			continue
		}
		t.conditions[key] = Condition{Key: key, Kind: KindPseudo, Prefix: prefix}
	}
	return errs
}

func (t *Tables) buildProperties(p *Preset) error {
	var errs error
	owners := make(map[string]string)    // abbreviation -> property
	claimedBy := make(map[string]string) // name or alias -> property
	for i, spec := range p.Properties {
		field := fmt.Sprintf("properties[%d]", i)
		if spec.Name == "" || spec.Abbreviation == "" {
			errs = multierr.Append(errs, &ConfigError{
				Code:    ErrEmptyProperty,
				Field:   field,
				Message: fmt.Sprintf("property %q needs both a name and an abbreviation", spec.Name),
			})
			continue
		}
		if owner, dup := owners[spec.Abbreviation]; dup {
			errs = multierr.Append(errs, &ConfigError{
				Code:    ErrDuplicateAbbreviation,
				Field:   field + ".abbreviation",
				Message: fmt.Sprintf("abbreviation %q is claimed by both %q and %q", spec.Abbreviation, owner, spec.Name),
			})
		} else {
			owners[spec.Abbreviation] = spec.Name
		}

		prop := Property{Name: spec.Name, Abbreviation: spec.Abbreviation}
		names := append([]string{spec.Name}, spec.Aliases...)
		for j, name := range names {
			if j > 0 && name == spec.Name {
				continue
			}
			if owner, dup := claimedBy[name]; dup && owner != spec.Name {
				errs = multierr.Append(errs, &ConfigError{
					Code:    ErrNameClaimedTwice,
					Field:   field,
					Message: fmt.Sprintf("name %q is claimed by both %q and %q", name, owner, spec.Name),
				})
				continue
			}
			if cond, ok := t.conditions[name]; ok {
				errs = multierr.Append(errs, &ConfigError{
					Code:    ErrConditionCollision,
					Field:   field,
					Message: fmt.Sprintf("property name %q clashes with the %s condition of the same name", name, cond.Kind),
				})
				continue
			}
			claimedBy[name] = spec.Name
			t.properties[name] = prop
		}
	}
	return errs
}

// Preset returns the preset the tables were built from.
func (t *Tables) Preset() *Preset {
	return t.preset
}

// Digest identifies the preset content.
func (t *Tables) Digest() string {
	return t.digest
}

// Separator joins abbreviation and value in a slug.
func (t *Tables) Separator() string {
	return t.preset.Separator
}

// Hash reports whether the preset asks for hashed class names.
func (t *Tables) Hash() bool {
	return t.preset.Hash
}

// Property resolves a property key through the alias table. Unknown keys
// pass through literally as both name and abbreviation with known=false.
func (t *Tables) Property(key string) (prop Property, known bool) {
	if prop, ok := t.properties[key]; ok {
		return prop, true
	}
	return Property{Name: key, Abbreviation: key}, false
}

// IsProperty reports whether key is a canonical property or alias.
func (t *Tables) IsProperty(key string) bool {
	_, ok := t.properties[key]
	return ok
}

// Condition resolves base, pseudo and breakpoint keys.
func (t *Tables) Condition(key string) (Condition, bool) {
	cond, ok := t.conditions[key]
	return cond, ok
}

// Arbitrary renders a key missing from the condition table as a verbatim,
// bracketed condition.
func (t *Tables) Arbitrary(key string) Condition {
	return Condition{
		Key:    key,
		Kind:   Classify(key),
		Prefix: "[" + EscapeWhitespace(key) + "]",
	}
}

// Resolve returns the table condition for key, or its arbitrary form.
func (t *Tables) Resolve(key string) Condition {
	if cond, ok := t.conditions[key]; ok {
		return cond
	}
	return t.Arbitrary(key)
}

// Breakpoint returns the breakpoint for a responsive ordinal (1-based).
func (t *Tables) Breakpoint(ordinal int) (Condition, bool) {
	if ordinal < 1 || ordinal > len(t.breakpoints) {
		return Condition{}, false
	}
	return t.breakpoints[ordinal-1], true
}

// Breakpoints returns the registry in ascending order.
func (t *Tables) Breakpoints() []Condition {
	return slices.Clone(t.breakpoints)
}

// EscapeWhitespace replaces every whitespace rune with an underscore.
func EscapeWhitespace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}
