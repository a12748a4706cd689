package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/queryir"
)

const selectRules = "SELECT " + RuleColumns + " FROM rules"

func TestCompile_AllRules(t *testing.T) {
	sql, params, err := Compile(queryir.Select{})
	require.NoError(t, err)

	assert.Equal(t, selectRules+" ORDER BY seq ASC, slug COLLATE BINARY ASC", sql)
	assert.Empty(t, params)
}

func TestCompile_Equals(t *testing.T) {
	sql, params, err := Compile(&queryir.Select{
		Filter: queryir.Equals{Field: queryir.FieldProperty, Value: ir.String("color")},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE property = ?")
	assert.NotContains(t, sql, "color")
	assert.Equal(t, []any{"color"}, params)
}

func TestCompile_EqualsRendersScalars(t *testing.T) {
	tests := []struct {
		value ir.Value
		want  string
	}{
		{ir.String("red.200"), "red.200"},
		{ir.Number("1.50"), "1.50"},
		{ir.Bool(false), "false"},
	}

	for _, tt := range tests {
		_, params, err := Compile(queryir.Select{
			Filter: queryir.Equals{Field: queryir.FieldValue, Value: tt.value},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{tt.want}, params)
	}
}

func TestCompile_HasCondition(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		Filter: &queryir.HasCondition{Condition: "hover"},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "json_each(rules.conditions)")
	assert.Equal(t, []any{"hover"}, params)
}

func TestCompile_Unconditioned(t *testing.T) {
	sql, params, err := Compile(queryir.Select{Filter: queryir.Unconditioned{}})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE json_array_length(conditions) = 0")
	assert.Empty(t, params)
}

func TestCompile_AndKeepsParamOrder(t *testing.T) {
	sql, params, err := Compile(queryir.Select{
		Filter: queryir.And{Predicates: []queryir.Predicate{
			queryir.Equals{Field: queryir.FieldRun, Value: ir.String("run-1")},
			queryir.HasCondition{Condition: "sm"},
			queryir.Equals{Field: queryir.FieldAbbreviation, Value: ir.String("bg")},
		}},
		Limit: 3,
	})
	require.NoError(t, err)

	want := selectRules +
		" WHERE run_id = ? AND EXISTS (SELECT 1 FROM json_each(rules.conditions) WHERE json_each.value = ?) AND abbreviation = ?" +
		" ORDER BY seq ASC, slug COLLATE BINARY ASC LIMIT ?"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{"run-1", "sm", "bg", 3}, params)
}

func TestCompile_EmptyAnd(t *testing.T) {
	sql, params, err := Compile(queryir.Select{Filter: queryir.And{}})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE 1 = 1")
	assert.Empty(t, params)
}

func TestCompile_OrderByMandatory(t *testing.T) {
	queries := []queryir.Query{
		queryir.Select{},
		queryir.Select{Limit: 1},
		queryir.Select{Filter: queryir.Unconditioned{}},
		&queryir.Select{Filter: queryir.HasCondition{Condition: "dark"}},
	}

	for _, q := range queries {
		sql, _, err := Compile(q)
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY seq ASC, slug COLLATE BINARY ASC")
	}
}

func TestCompile_InvalidQuery(t *testing.T) {
	_, _, err := Compile(queryir.Select{
		Filter: queryir.Equals{Field: "colour", Value: ir.String("red")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query")

	_, _, err = Compile(nil)
	assert.Error(t, err)
}
