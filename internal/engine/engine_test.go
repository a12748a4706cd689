package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/testutil"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(testutil.DefaultTables(t), opts...)
}

func TestCompile_ClassNames(t *testing.T) {
	tests := []struct {
		name     string
		partials []string
		want     string
	}{
		{"native prop and value", []string{`{"display": "flex"}`}, "d_flex"},
		{"token value", []string{`{"color": "blue.300"}`}, "c_blue.300"},
		{"utility prop", []string{`{"srOnly": true}`}, "sr_true"},
		{"shorthand prop", []string{`{"bg": "red"}`}, "bg_red"},
		{"object condition prop", []string{`{"bg": {"_hover": "yellow.100"}}`}, "hover:bg_yellow.100"},
		{"condition prop", []string{`{"_hover": {"bg": "yellow.200"}}`}, "hover:bg_yellow.200"},
		{"nested condition prop", []string{`{"_hover": {"_dark": {"bg": "pink"}}}`}, "hover:dark:bg_pink"},
		{"arbitrary value", []string{`{"color": "#fff"}`}, "c_#fff"},
		{"arbitrary selector", []string{`{"&:data-panda": {"display": "flex"}}`}, "[&:data-panda]:d_flex"},
		{"unknown property object form", []string{`{"aspectRatio": {"base": "1", "md": "2"}}`}, "aspectRatio_1 md:aspectRatio_2"},
		{"responsive condition", []string{`{"sm": {"bg": "purple"}}`}, "sm:bg_purple"},
		{
			"responsive array",
			[]string{`{"bg": ["cyan.100", "cyan.200", null, null, "cyan.300"]}`},
			"bg_cyan.100 sm:bg_cyan.200 xl:bg_cyan.300",
		},
		{
			"token helper in value",
			[]string{`{"border": "1px solid token(colors.blue.400)"}`},
			"bd_1px_solid_token(colors.blue.400)",
		},
		{
			"token helper in condition",
			[]string{`{"@media screen and (min-width: token(sizes.4xl))": {"bg": "blue.500"}}`},
			"[@media_screen_and_(min-width:_token(sizes.4xl))]:bg_blue.500",
		},
		{
			"nested condition with array",
			[]string{`{"_hover": {"_dark": {"bg": ["pink.100", "pink.200"]}}}`},
			"hover:dark:bg_pink.100 hover:dark:sm:bg_pink.200",
		},
		{"same prop alias first", []string{`{"bgColor": "red.100", "backgroundColor": "red.200"}`}, "bg-c_red.200"},
		{"same prop canonical first", []string{`{"backgroundColor": "red.300", "bgColor": "red.400"}`}, "bg-c_red.400"},
		{
			"merging styles",
			[]string{`{"fontSize": "sm", "bgColor": "red.500"}`, `{"backgroundColor": "red.600"}`},
			"fs_sm bg-c_red.600",
		},
		{
			"merging nested conditions",
			[]string{`{"fontSize": "sm", "_hover": {"color": "green.100"}}`, `{"_hover": {"color": "green.200"}}`},
			"fs_sm hover:c_green.200",
		},
		{
			"merging object condition prop",
			[]string{`{"fontSize": "md"}`, `{"fontSize": {"base": "lg", "sm": "xs"}}`},
			"fs_lg sm:fs_xs",
		},
		{
			"merging array item",
			[]string{`{"fontSize": "sm", "bgColor": "red.500"}`, `[{"backgroundColor": "red.600"}, {"fontSize": "12px"}]`},
			"fs_12px bg-c_red.600",
		},
	}

	eng := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Compile(testutil.Values(t, tt.partials...)...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_EmptyInput(t *testing.T) {
	eng := newTestEngine(t)

	assert.Equal(t, "", eng.Compile())
	assert.Equal(t, "", eng.Compile(testutil.Value(t, `{}`)))
	assert.Equal(t, "", eng.Compile(ir.Null{}))
}

func TestCompile_NumberKeepsLiteral(t *testing.T) {
	eng := newTestEngine(t)

	got := eng.Compile(testutil.Value(t, `{"lineHeight": 1.5, "zIndex": 10}`))

	assert.Equal(t, "lh_1.5 z_10", got)
}

func TestCompile_UnknownPropertyPassesThrough(t *testing.T) {
	eng := newTestEngine(t)

	got := eng.Compile(testutil.Value(t, `{"scrollbarGutter": "stable both-edges"}`))

	assert.Equal(t, "scrollbarGutter_stable_both-edges", got)
}

func TestCompile_Deterministic(t *testing.T) {
	eng := newTestEngine(t)
	partials := testutil.Values(t,
		`{"bg": {"_hover": "red", "md": "blue"}, "_dark": {"color": ["a", null, "b"]}}`,
		`{"fontSize": "sm"}`,
	)

	first := eng.Compile(partials...)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, eng.Compile(partials...))
	}
}

func TestCompile_ConcurrentUse(t *testing.T) {
	eng := newTestEngine(t)
	want := "hover:dark:bg_pink.100 hover:dark:sm:bg_pink.200"
	tree := testutil.Value(t, `{"_hover": {"_dark": {"bg": ["pink.100", "pink.200"]}}}`)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, want, eng.Compile(tree))
			}
		}()
	}
	wg.Wait()
}

func TestCompile_Hash(t *testing.T) {
	plain := newTestEngine(t)
	hashed := newTestEngine(t, WithHash(true))
	tree := testutil.Value(t, `{"display": "flex", "color": "red"}`)

	got := hashed.Compile(tree)

	assert.Equal(t, ir.ClassHash("d_flex")+" "+ir.ClassHash("c_red"), got)
	assert.NotEqual(t, plain.Compile(tree), got)
	assert.Regexp(t, `^x[0-9a-f]{8} x[0-9a-f]{8}$`, got)
}

func TestRaw_CanonicalTree(t *testing.T) {
	tests := []struct {
		name     string
		partials []string
		want     string
	}{
		{"single tree unchanged", []string{`{"display": "flex"}`}, `{"display":"flex"}`},
		{"bool kept", []string{`{"srOnly": true}`}, `{"srOnly":true}`},
		{
			"arrays kept with nulls",
			[]string{`{"bg": ["cyan.100", "cyan.200", null, null, "cyan.300"]}`},
			`{"bg":["cyan.100","cyan.200",null,null,"cyan.300"]}`,
		},
		{
			"arbitrary condition key kept",
			[]string{`{"@media screen and (min-width: token(sizes.4xl))": {"bg": "blue.500"}}`},
			`{"@media screen and (min-width: token(sizes.4xl))":{"bg":"blue.500"}}`,
		},
		{
			"aliases not folded",
			[]string{`{"bgColor": "red.100", "backgroundColor": "red.200"}`},
			`{"bgColor":"red.100","backgroundColor":"red.200"}`,
		},
		{
			"nested conditions merge",
			[]string{`{"fontSize": "sm", "_hover": {"color": "green.100"}}`, `{"_hover": {"color": "green.200"}}`},
			`{"fontSize":"sm","_hover":{"color":"green.200"}}`,
		},
		{
			"scalar replaced by object",
			[]string{`{"fontSize": "md"}`, `{"fontSize": {"base": "lg", "sm": "xs"}}`},
			`{"fontSize":{"base":"lg","sm":"xs"}}`,
		},
		{
			"array item partials",
			[]string{`{"fontSize": "sm", "bgColor": "red.500"}`, `[{"backgroundColor": "red.600"}, {"fontSize": "12px"}]`},
			`{"fontSize":"12px","bgColor":"red.500","backgroundColor":"red.600"}`,
		},
	}

	eng := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Raw(testutil.Values(t, tt.partials...)...)
			assert.Equal(t, tt.want, testutil.JSON(t, got))
		})
	}
}

func TestExplain_ReturnsDeclarations(t *testing.T) {
	eng := newTestEngine(t)

	decls := eng.Explain(testutil.Value(t, `{"bg": {"_hover": "yellow.100"}, "display": "flex"}`))

	require.Len(t, decls, 2)
	assert.Equal(t, ir.Decl{Conditions: []string{"hover"}, Property: "background", Abbreviation: "bg", Value: "yellow.100"}, decls[0])
	assert.Equal(t, ir.Decl{Property: "display", Abbreviation: "d", Value: "flex"}, decls[1])
}

func TestNew_Options(t *testing.T) {
	eng := newTestEngine(t, WithLogger(nil))

	assert.NotNil(t, eng.log)
	assert.False(t, eng.EmitOptions().Hash)
	assert.Equal(t, "_", eng.EmitOptions().Separator)
	assert.True(t, newTestEngine(t, WithHash(true)).EmitOptions().Hash)
}
