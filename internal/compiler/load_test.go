package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

const cardJSON = `[{"display":"flex","bgColor":"gray.100","padding":[2,4],"lineHeight":1.5,"srOnly":false},` +
	`{"_hover":{"backgroundColor":"gray.200"},"&:focus-visible > span":{"outline":"1px solid blue"}}]`

func marshalPartials(t *testing.T, partials []ir.Value) string {
	t.Helper()
	data, err := ir.MarshalValue(ir.Array(partials))
	require.NoError(t, err)
	return string(data)
}

func TestLoadFile_FormatsAgree(t *testing.T) {
	for _, path := range []string{"testdata/card.yaml", "testdata/card.json", "testdata/card.cue"} {
		t.Run(path, func(t *testing.T) {
			partials, err := LoadFile(path)
			require.NoError(t, err)

			require.Len(t, partials, 2)
			assert.Equal(t, cardJSON, marshalPartials(t, partials))
		})
	}
}

func TestLoadFile_YAMLStream(t *testing.T) {
	partials, err := LoadFile("testdata/stream.yaml")
	require.NoError(t, err)

	assert.Equal(t, `[{"color":"red"},{"color":"blue","fontSize":["sm",null,"lg"]}]`, marshalPartials(t, partials))
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("testdata/missing.yaml")
	assert.Error(t, err)

	_, err = LoadFile("testdata/card.txt")
	assert.Error(t, err)
}

func TestParse_CUEWithoutStylesField(t *testing.T) {
	partials, err := Parse([]byte(`color: "red"`), config.FormatCUE, "inline.cue")
	require.NoError(t, err)

	assert.Equal(t, `[{"color":"red"}]`, marshalPartials(t, partials))
}

func TestParse_NullDocumentHasNoPartials(t *testing.T) {
	partials, err := Parse([]byte(`null`), config.FormatJSON, "")
	require.NoError(t, err)
	assert.Empty(t, partials)
}

func TestParseExpression(t *testing.T) {
	partials, err := ParseExpression(`{"bg": {"_hover": "yellow.100"}}`)
	require.NoError(t, err)
	assert.Equal(t, `[{"bg":{"_hover":"yellow.100"}}]`, marshalPartials(t, partials))

	_, err = ParseExpression(`{"bg":`)
	assert.Error(t, err)
}
