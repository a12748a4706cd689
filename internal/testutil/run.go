package testutil

// FixedRunGenerator generates the same run token every time.
//
// Store tests and golden reports use it so recorded runs are byte-identical
// across executions.
//
// Thread-safety: FixedRunGenerator is stateless and safe for concurrent use.
type FixedRunGenerator struct {
	token string
}

// NewFixedRunGenerator creates a fixed run token generator.
// If token is empty, Generate() returns "test-run-default".
func NewFixedRunGenerator(token string) *FixedRunGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedRunGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements store.RunTokenGenerator.
func (g *FixedRunGenerator) Generate() string {
	return g.token
}
