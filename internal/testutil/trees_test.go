package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTree_KeepsKeyOrder(t *testing.T) {
	tree := Tree(t, `{"z": 1, "a": {"y": null, "b": true}}`)

	assert.Equal(t, []string{"z", "a"}, tree.Keys())
	assert.Equal(t, `{"z":1,"a":{"y":null,"b":true}}`, JSON(t, tree))
}

func TestValues_DecodesEachLiteral(t *testing.T) {
	vals := Values(t, `{"a": "b"}`, `[{"c": "d"}]`)

	assert.Len(t, vals, 2)
	assert.Equal(t, `[{"c":"d"}]`, JSON(t, vals[1]))
}

func TestDefaultTables_Builds(t *testing.T) {
	tables := DefaultTables(t)

	assert.Equal(t, "_", tables.Separator())
	assert.True(t, tables.IsProperty("bgColor"))
}
