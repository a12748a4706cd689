package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
cases:
  - name: hover
    partials:
      - _hover: { bg: yellow.200 }
      - [{ color: red }]
    expect: "hover:bg_yellow.200 c_red"
    declarations: 2
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.Len(t, scenario.Cases, 1)

	c := scenario.Cases[0]
	assert.Equal(t, "hover", c.Name)
	assert.Len(t, c.Partials, 2)
	require.NotNil(t, c.Expect)
	assert.Equal(t, "hover:bg_yellow.200 c_red", *c.Expect)
	require.NotNil(t, c.Declarations)
	assert.Equal(t, 2, *c.Declarations)
	assert.False(t, c.HasRaw())
}

func TestLoadScenario_RawOnly(t *testing.T) {
	path := writeScenario(t, `
name: raw_only
description: "Raw expectation without a class name"
cases:
  - name: merge
    partials: [{ a: 1 }, { a: 2 }]
    raw: { a: 2 }
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	c := scenario.Cases[0]
	assert.Nil(t, c.Expect)
	assert.True(t, c.HasRaw())
}

func TestLoadScenario_EmptyExpect(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: "An empty class name is a valid expectation"
cases:
  - name: nothing
    partials: []
    expect: ""
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Cases[0].Expect)
	assert.Equal(t, "", *scenario.Cases[0].Expect)
}

func TestLoadScenario_PresetResolvedRelativeToFile(t *testing.T) {
	path := writeScenario(t, `
name: with_preset
description: "Preset path"
preset: presets/custom.yaml
cases:
  - name: one
    partials: [{ display: flex }]
    expect: d_flex
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "presets", "custom.yaml"), scenario.Preset)
}

func TestLoadScenario_AbsolutePresetKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "preset.yaml")
	path := writeScenario(t, `
name: with_preset
description: "Preset path"
preset: `+abs+`
cases:
  - name: one
    partials: [{ display: flex }]
    expect: d_flex
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, abs, scenario.Preset)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "x"
cases:
  - { name: a, partials: [], expect: "" }
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
cases:
  - { name: a, partials: [], expect: "" }
`,
			wantErr: "description is required",
		},
		{
			name: "missing cases",
			content: `
name: x
description: "x"
`,
			wantErr: "cases list is required",
		},
		{
			name: "case without name",
			content: `
name: x
description: "x"
cases:
  - { partials: [], expect: "" }
`,
			wantErr: "cases[0]: name is required",
		},
		{
			name: "duplicate case name",
			content: `
name: x
description: "x"
cases:
  - { name: a, partials: [], expect: "" }
  - { name: a, partials: [], expect: "" }
`,
			wantErr: `duplicate case name "a"`,
		},
		{
			name: "case without expectation",
			content: `
name: x
description: "x"
cases:
  - { name: a, partials: [{ display: flex }] }
`,
			wantErr: "expect or raw is required",
		},
		{
			name: "negative declarations",
			content: `
name: x
description: "x"
cases:
  - { name: a, partials: [], expect: "", declarations: -1 }
`,
			wantErr: "declarations must be non-negative",
		},
		{
			name: "malformed yaml",
			content: `
name: x
cases: [unclosed
`,
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "top level typo",
			content: `
name: x
description: "x"
case:
  - { name: a, partials: [], expect: "" }
`,
		},
		{
			name: "case level typo",
			content: `
name: x
description: "x"
cases:
  - { name: a, partial: [], expect: "" }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not found")
		})
	}
}

func TestLoadExampleScenarios(t *testing.T) {
	tests := []struct {
		file      string
		wantName  string
		wantCases int
	}{
		{"testdata/scenarios/basics.yaml", "basics", 7},
		{"testdata/scenarios/custom_preset.yaml", "custom_preset", 4},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			scenario, err := LoadScenario(tt.file)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, scenario.Name)
			assert.Len(t, scenario.Cases, tt.wantCases)
		})
	}
}
