package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/testutil"
)

func TestMergeAll_LaterWins(t *testing.T) {
	got := MergeAll(testutil.Values(t,
		`{"a": "1", "b": {"x": "1", "y": "1"}}`,
		`{"b": {"y": "2", "z": "2"}, "c": "2", "a": "3"}`,
	)...)

	assert.Equal(t, `{"a":"3","b":{"x":"1","y":"2","z":"2"},"c":"2"}`, testutil.JSON(t, got))
}

func TestMergeAll_ObjectReplacesScalarAndBack(t *testing.T) {
	got := MergeAll(testutil.Values(t,
		`{"a": "1", "b": {"x": "1"}}`,
		`{"a": {"y": "2"}, "b": "2"}`,
	)...)

	assert.Equal(t, `{"a":{"y":"2"},"b":"2"}`, testutil.JSON(t, got))
}

func TestMergeAll_ArraysReplacedWholesale(t *testing.T) {
	got := MergeAll(testutil.Values(t,
		`{"color": ["a", "b", "c"]}`,
		`{"color": [null, "z"]}`,
	)...)

	assert.Equal(t, `{"color":[null,"z"]}`, testutil.JSON(t, got))
}

func TestMergeAll_FlattensNestedArraysAndSkipsNonObjects(t *testing.T) {
	got := MergeAll(
		ir.Null{},
		testutil.Value(t, `[{"a": "1"}, [null, {"b": "2"}, "junk"], 3]`),
		testutil.Value(t, `{"a": "4"}`),
	)

	assert.Equal(t, `{"a":"4","b":"2"}`, testutil.JSON(t, got))
}

func TestMergeAll_NoPartials(t *testing.T) {
	got := MergeAll()

	assert.Equal(t, 0, got.Len())
}

func TestMergeAll_InputsUntouched(t *testing.T) {
	first := testutil.Tree(t, `{"_hover": {"color": "a"}, "bg": ["x"]}`)
	second := testutil.Tree(t, `{"_hover": {"color": "b", "display": "flex"}}`)
	firstBefore, secondBefore := testutil.JSON(t, first), testutil.JSON(t, second)

	got := MergeAll(first, second)

	assert.Equal(t, firstBefore, testutil.JSON(t, first))
	assert.Equal(t, secondBefore, testutil.JSON(t, second))

	// the result must not alias either input
	scope, _ := got.Get("_hover")
	scope.(*ir.Object).Set("color", ir.String("mutated"))
	arr, _ := got.Get("bg")
	arr.(ir.Array)[0] = ir.String("mutated")
	assert.Equal(t, firstBefore, testutil.JSON(t, first))
	assert.Equal(t, secondBefore, testutil.JSON(t, second))
}

func TestMergeAll_Idempotent(t *testing.T) {
	tree := testutil.Tree(t, `{"a": {"b": ["c", null]}, "d": true}`)

	once := MergeAll(tree)
	twice := MergeAll(tree, tree)

	assert.True(t, ir.Equal(once, twice))
	assert.True(t, ir.Equal(tree, once))
}
