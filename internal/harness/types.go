package harness

// CaseResult is the outcome of one scenario case.
type CaseResult struct {
	Name string `json:"name"`

	// ClassName is what the engine rendered for the case's partials.
	ClassName string `json:"class_name"`

	// Declarations is the number of atomic declarations the case expanded to.
	Declarations int `json:"declarations"`

	Pass bool `json:"pass"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	Scenario string `json:"scenario"`

	// Pass indicates overall test success.
	// True if every case matches its expectations.
	Pass bool `json:"pass"`

	// Cases in scenario order.
	Cases []CaseResult `json:"cases"`

	// Rules are the distinct atomic rules the scenario registered, in
	// first-use order.
	Rules []RuleLine `json:"rules"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// RuleLine is one registered rule as shown in a report.
type RuleLine struct {
	ClassName  string   `json:"class_name"`
	Conditions []string `json:"conditions,omitempty"`
	Property   string   `json:"property"`
	Value      string   `json:"value"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
		Rules:    []RuleLine{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
