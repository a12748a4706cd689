package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// First run with -update to create golden files:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden(t *testing.T) {
	for _, file := range []string{
		"testdata/scenarios/basics.yaml",
		"testdata/scenarios/custom_preset.yaml",
	} {
		t.Run(file, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario, nil)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}

func TestRunWithGolden_RunError(t *testing.T) {
	scenario := &Scenario{
		Name:        "broken",
		Description: "Preset file does not exist",
		Preset:      "/nonexistent/preset.yaml",
	}

	_, err := RunWithGolden(t, scenario, nil)
	assert.Error(t, err)
}
