// Package querysql compiles registry queries to parameterized SQLite.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/queryir"
)

// RuleColumns is the column list of every compiled query, in the order
// the store scans them.
const RuleColumns = "seq, slug, class_name, conditions, property, abbreviation, value, run_id"

// ruleOrder is the ORDER BY of every compiled query. Registration order,
// slug as the tiebreaker.
const ruleOrder = "seq ASC, slug COLLATE BINARY ASC"

// Compile converts a query to SQL over the rules table.
// Returns (sql, params, error).
//
// Every query is ordered by ruleOrder, and every value is a ? parameter,
// never interpolated. Queries are validated first.
func Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q); err != nil {
		return "", nil, fmt.Errorf("invalid query: %w", err)
	}

	switch query := q.(type) {
	case queryir.Select:
		return compileSelect(query)
	case *queryir.Select:
		return compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func compileSelect(q queryir.Select) (string, []any, error) {
	var (
		b      strings.Builder
		params []any
	)
	b.WriteString("SELECT " + RuleColumns + " FROM rules")

	if q.Filter != nil {
		where, filterParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString(" WHERE " + where)
		params = append(params, filterParams...)
	}

	b.WriteString(" ORDER BY " + ruleOrder)

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, q.Limit)
	}
	return b.String(), params, nil
}

func compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return compileEquals(pred)
	case *queryir.Equals:
		return compileEquals(*pred)
	case queryir.HasCondition:
		return compileHasCondition(pred)
	case *queryir.HasCondition:
		return compileHasCondition(*pred)
	case queryir.Unconditioned, *queryir.Unconditioned:
		return "json_array_length(conditions) = 0", nil, nil
	case queryir.And:
		return compileAnd(pred)
	case *queryir.And:
		return compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles "field = ?". The field is one of queryir.Fields,
// which are column names.
func compileEquals(eq queryir.Equals) (string, []any, error) {
	param, ok := ir.Render(eq.Value)
	if !ok {
		return "", nil, fmt.Errorf("field %s: %s is not a comparable value", eq.Field, ir.KindOf(eq.Value))
	}
	return string(eq.Field) + " = ?", []any{param}, nil
}

// compileHasCondition matches a member of the JSON condition array.
func compileHasCondition(hc queryir.HasCondition) (string, []any, error) {
	sql := "EXISTS (SELECT 1 FROM json_each(rules.conditions) WHERE json_each.value = ?)"
	return sql, []any{hc.Condition}, nil
}

func compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}
