package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// Value decodes a JSON literal into an ordered ir.Value.
// Key order of the literal is kept, so tests can state trees inline:
//
//	testutil.Value(t, `{"_hover": {"bg": "yellow.200"}}`)
func Value(t testing.TB, src string) ir.Value {
	t.Helper()
	v, err := ir.DecodeJSON([]byte(src))
	require.NoError(t, err, "decode %s", src)
	return v
}

// Tree decodes a JSON object literal into an *ir.Object.
func Tree(t testing.TB, src string) *ir.Object {
	t.Helper()
	obj, ok := Value(t, src).(*ir.Object)
	require.True(t, ok, "%s is not a JSON object", src)
	return obj
}

// Values decodes each JSON literal in turn, for variadic partials.
func Values(t testing.TB, srcs ...string) []ir.Value {
	t.Helper()
	out := make([]ir.Value, len(srcs))
	for i, src := range srcs {
		out[i] = Value(t, src)
	}
	return out
}

// DefaultTables builds tables from the embedded default preset.
func DefaultTables(t testing.TB) *config.Tables {
	t.Helper()
	tables, err := config.NewTables(config.Default())
	require.NoError(t, err)
	return tables
}

// JSON renders a value as compact ordered JSON for assertions.
func JSON(t testing.TB, v ir.Value) string {
	t.Helper()
	data, err := ir.MarshalValue(v)
	require.NoError(t, err)
	return string(data)
}
