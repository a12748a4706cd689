package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: style trees fed through the
// engine, with the class names and canonical trees they must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Preset is an optional preset file replacing the engine's tables.
	// Relative paths are resolved against the scenario file location.
	Preset string `yaml:"preset,omitempty"`

	// RunToken is an optional fixed run token for the recorded run.
	// If empty, defaults to "test-run-default".
	RunToken string `yaml:"run_token,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Case is one compile call and its expectations. At least one of Expect
// and Raw must be set.
type Case struct {
	Name string `yaml:"name"`

	// Partials are the style trees passed to the engine, in order.
	// A partial that is a list is flattened.
	Partials []yaml.Node `yaml:"partials"`

	// Expect is the expected class name string.
	Expect *string `yaml:"expect,omitempty"`

	// Raw is the expected canonical tree of the merged partials, key order
	// included.
	Raw yaml.Node `yaml:"raw,omitempty"`

	// Declarations is the expected number of atomic declarations.
	Declarations *int `yaml:"declarations,omitempty"`
}

// HasRaw reports whether the case states an expected canonical tree.
func (c *Case) HasRaw() bool {
	return c.Raw.Kind != 0
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Preset != "" && !filepath.IsAbs(scenario.Preset) {
		scenario.Preset = filepath.Join(filepath.Dir(path), scenario.Preset)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML. Preset paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "case:" vs "cases:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	if s.Description == "" {
		return errors.New("description is required")
	}

	if len(s.Cases) == 0 {
		return errors.New("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Expect == nil && !c.HasRaw() {
			return fmt.Errorf("case %q: expect or raw is required", c.Name)
		}
		if c.Declarations != nil && *c.Declarations < 0 {
			return fmt.Errorf("case %q: declarations must be non-negative, got %d", c.Name, *c.Declarations)
		}
	}

	return nil
}
