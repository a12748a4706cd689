package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/queryir"
)

// seedRules registers d_flex and hover:c_red under run-1, then sm:d_grid
// under run-2.
func seedRules(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	writeTestRun(t, s, "run-1")
	writeTestRun(t, s, "run-2")

	first := testCompilation(t, "run-1", ir.NewObject(ir.P("display", ir.String("flex"))),
		testRule("d_flex", dFlex), testRule("hover:c_red", hoverRed))
	require.NoError(t, s.WriteCompilation(ctx, first))
	second := testCompilation(t, "run-2", ir.NewObject(ir.P("display", ir.String("grid"))),
		testRule("sm:d_grid", smGrid))
	require.NoError(t, s.WriteCompilation(ctx, second))
}

func slugs(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Slug
	}
	return out
}

func TestQueryRules(t *testing.T) {
	s := openTestStore(t)
	seedRules(t, s)

	tests := []struct {
		name  string
		query queryir.Select
		want  []string
	}{
		{"all", queryir.Select{}, []string{"d_flex", "hover:c_red", "sm:d_grid"}},
		{"property", queryir.Select{
			Filter: queryir.Equals{Field: queryir.FieldProperty, Value: ir.String("display")},
		}, []string{"d_flex", "sm:d_grid"}},
		{"condition", queryir.Select{
			Filter: queryir.HasCondition{Condition: "hover"},
		}, []string{"hover:c_red"}},
		{"unconditioned", queryir.Select{
			Filter: queryir.Unconditioned{},
		}, []string{"d_flex"}},
		{"run and property", queryir.Select{
			Filter: queryir.Where(
				queryir.Equals{Field: queryir.FieldRun, Value: ir.String("run-2")},
				queryir.Equals{Field: queryir.FieldAbbreviation, Value: ir.String("d")},
			),
		}, []string{"sm:d_grid"}},
		{"limit", queryir.Select{Limit: 2}, []string{"d_flex", "hover:c_red"}},
		{"no match", queryir.Select{
			Filter: queryir.Equals{Field: queryir.FieldValue, Value: ir.String("block")},
		}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := s.QueryRules(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(rules))
		})
	}
}

func TestQueryRules_InvalidQuery(t *testing.T) {
	s := openTestStore(t)

	_, err := s.QueryRules(context.Background(), queryir.Select{Limit: -1})
	assert.Error(t, err)
}

func TestReadRunRules_OnlyFirstRegistrations(t *testing.T) {
	s := openTestStore(t)
	seedRules(t, s)

	rules, err := s.ReadRunRules(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"sm:d_grid"}, slugs(rules))
}
