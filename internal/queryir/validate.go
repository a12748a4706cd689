package queryir

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/roach88/stylec/internal/ir"
)

// Validate checks a query before a backend compiles it. Every problem is
// reported; the result combines them with multierr.
//
// Rules:
//  1. Equals names a known Field and compares a scalar
//  2. HasCondition names a non-empty condition
//  3. Limit is not negative
//
// Validate is a pure function with no side effects.
func Validate(query Query) error {
	v := &validator{}
	v.validateQuery(query)
	return v.err
}

type validator struct {
	err error
}

func (v *validator) add(format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.add("nil query")
			return
		}
		v.validateSelect(*query)
	case nil:
		v.add("nil query")
	default:
		v.add("unsupported query type %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.Limit < 0 {
		v.add("limit must be non-negative, got %d", sel.Limit)
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case HasCondition:
		v.validateHasCondition(pred)
	case *HasCondition:
		v.validateHasCondition(*pred)
	case Unconditioned, *Unconditioned:
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	case nil:
		v.add("nil predicate")
	default:
		v.add("unsupported predicate type %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	if !slices.Contains(Fields, eq.Field) {
		v.add("unknown field %q", eq.Field)
	}
	if !ir.IsScalar(eq.Value) {
		v.add("field %q compared to a %s, only scalars are comparable", eq.Field, ir.KindOf(eq.Value))
	}
}

func (v *validator) validateHasCondition(hc HasCondition) {
	if hc.Condition == "" {
		v.add("empty condition")
	}
}

func (v *validator) validateAnd(and And) {
	for _, sub := range and.Predicates {
		v.validatePredicate(sub)
	}
}
