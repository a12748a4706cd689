package queryir

import "github.com/roach88/stylec/internal/ir"

// Query selects rules from the registry.
//
// This is a sealed interface; only types in this package implement it.
type Query interface {
	queryNode()
}

// Predicate filters rules.
//
// This is a sealed interface; only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Field names a rule column a predicate can compare.
type Field string

const (
	FieldSlug         Field = "slug"
	FieldClassName    Field = "class_name"
	FieldProperty     Field = "property"
	FieldAbbreviation Field = "abbreviation"
	FieldValue        Field = "value"
	FieldRun          Field = "run_id"
)

// Fields lists every comparable field.
var Fields = []Field{FieldSlug, FieldClassName, FieldProperty, FieldAbbreviation, FieldValue, FieldRun}

// Select reads the rules matching Filter in registration order.
//
// Example:
//
//	Select{
//	  Filter: And{Predicates: []Predicate{
//	    Equals{Field: FieldProperty, Value: ir.String("color")},
//	    HasCondition{Condition: "hover"},
//	  }},
//	  Limit: 10,
//	}
//
// reads the first ten color rules under a hover condition.
type Select struct {
	Filter Predicate // nil matches every rule
	Limit  int       // 0 means no limit
}

func (Select) queryNode() {}

// Equals matches rules whose Field renders to the same text as Value.
type Equals struct {
	Field Field
	Value ir.Value
}

func (Equals) predicateNode() {}

// HasCondition matches rules whose condition path contains Condition,
// a rendered prefix such as "hover" or "sm".
type HasCondition struct {
	Condition string
}

func (HasCondition) predicateNode() {}

// Unconditioned matches rules in the base scope, with no condition path.
type Unconditioned struct{}

func (Unconditioned) predicateNode() {}

// And matches when every predicate matches. An empty And matches all rules.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Where joins the non-nil predicates: nil when there are none, the
// predicate itself when there is one, otherwise an And.
func Where(preds ...Predicate) Predicate {
	var kept []Predicate
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Predicates: kept}
	}
}
