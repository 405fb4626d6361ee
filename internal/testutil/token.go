// Package testutil provides deterministic helpers for tests.
package testutil

// FixedTokenGenerator returns the same run token every time.
//
// This enables deterministic runs and byte-stable report comparison:
// the same fixtures graded with the same FixedTokenGenerator produce
// identical reports.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed run token generator.
//
// If token is empty, Generate() returns "test-run-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements harness.TokenGenerator interface.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
