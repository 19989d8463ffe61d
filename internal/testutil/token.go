package testutil

// FixedTokenGenerator generates the same request token every time.
//
// Unlike engine.FixedGenerator which returns tokens in sequence, this
// generator never runs out, which suits tests that issue an unknown number
// of requests but compare logs or snapshots.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a new fixed token generator.
// If token is empty, Generate() returns "test-request".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-request"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
