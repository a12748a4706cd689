package compiler

import (
	"fmt"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// Lint finding codes (E300-E399). The pipeline accepts every tree, so
// these flag input the engine resolves silently.
const (
	ErrUnknownProperty       = "E301" // unknown property passes through literally
	ErrConditionNotScope     = "E302" // condition key holds a non-object value
	ErrUnknownCondition      = "E303" // unknown condition key without selector or at-rule syntax
	ErrResponsiveTooLong     = "E304" // responsive array longer than the breakpoint registry
	ErrNestedResponsiveArray = "E305" // array inside a responsive position
	ErrObjectInResponsive    = "E306" // object inside a responsive array
)

// ValidationError is one lint finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Lint checks a canonical tree against the preset tables.
// Returns all findings (does not fail-fast), in key order.
func Lint(tree *ir.Object, tables *config.Tables) []ValidationError {
	l := &linter{tables: tables}
	l.scope(tree, "(root)")
	return l.errs
}

type linter struct {
	tables *config.Tables
	errs   []ValidationError
}

func (l *linter) add(code, field, format string, args ...any) {
	l.errs = append(l.errs, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

func (l *linter) scope(tree *ir.Object, field string) {
	for key, val := range tree.All() {
		child := childField(field, key)

		if _, ok := l.tables.Condition(key); ok {
			scope, isObj := val.(*ir.Object)
			if !isObj {
				// E302: value is dropped by the engine
				l.add(ErrConditionNotScope, child, "condition %q holds a %s; only nested style objects are expanded", key, ir.KindOf(val))
				continue
			}
			l.scope(scope, child)
			continue
		}

		if l.tables.IsProperty(key) {
			l.value(val, child)
			continue
		}

		if scope, isObj := val.(*ir.Object); isObj && config.Classify(key).Verbatim() {
			l.scope(scope, child)
			continue
		}

		// E301: no alias entry, key and value are emitted verbatim
		l.add(ErrUnknownProperty, child, "unknown property %q is emitted literally", key)
		l.value(val, child)
	}
}

// value checks a property value.
func (l *linter) value(val ir.Value, field string) {
	switch v := val.(type) {
	case ir.Array:
		l.responsive(v, field)
	case *ir.Object:
		for key, sub := range v.All() {
			child := childField(field, key)
			if _, ok := l.tables.Condition(key); !ok {
				l.arbitrary(key, child)
			}
			l.value(sub, child)
		}
	}
}

func (l *linter) responsive(arr ir.Array, field string) {
	if limit := len(l.tables.Breakpoints()) + 1; len(arr) > limit {
		l.add(ErrResponsiveTooLong, field, "responsive array has %d positions, the breakpoint registry covers %d; the rest are dropped", len(arr), limit)
	}
	for i, item := range arr {
		child := fmt.Sprintf("%s[%d]", field, i)
		switch v := item.(type) {
		case ir.Array:
			l.add(ErrNestedResponsiveArray, child, "nested array in a responsive position is dropped")
		case *ir.Object:
			l.add(ErrObjectInResponsive, child, "object in a responsive array is expanded as object-form conditions under the breakpoint")
			l.value(v, child)
		}
	}
}

// arbitrary flags object-form condition keys that look like neither a
// selector nor an at-rule, usually a misspelt condition name.
func (l *linter) arbitrary(key, field string) {
	if kind := config.Classify(key); kind == config.KindArbitrary {
		l.add(ErrUnknownCondition, field, "%q is not a known condition and has no selector or at-rule syntax; it is emitted as %s", key, l.tables.Arbitrary(key).Prefix)
	}
}
