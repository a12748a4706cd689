package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaw_MergedTree(t *testing.T) {
	out, _, err := execute(t, "raw", "testdata/styles/card.yaml", "-e", `{"color": "red"}`)
	require.NoError(t, err)

	want := `{
  "display": "flex",
  "color": "red",
  "_hover": {
    "bg": "yellow.200"
  }
}
`
	assert.Equal(t, want, out)
}

func TestRaw_KeepsAliases(t *testing.T) {
	out, _, err := execute(t, "raw", "-e", `{"bgColor": "red.100", "backgroundColor": "red.200"}`)
	require.NoError(t, err)

	assert.Contains(t, out, `"bgColor": "red.100"`)
	assert.Contains(t, out, `"backgroundColor": "red.200"`)
}

func TestRaw_Normalize(t *testing.T) {
	out, _, err := execute(t, "raw", "--normalize", "-e", `{"bgColor": "red.100", "backgroundColor": "red.200"}`)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"backgroundColor\": \"red.200\"\n}\n", out)
}

func TestRaw_JSON(t *testing.T) {
	out, _, err := execute(t, "raw", "--format", "json", "-e", `{"display": "flex", "_hover": {"color": "red"}}`)
	require.NoError(t, err)

	resp, data := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.JSONEq(t, `{"display": "flex", "_hover": {"color": "red"}}`, string(data))
}

func TestRaw_NoInput(t *testing.T) {
	_, _, err := execute(t, "raw")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
