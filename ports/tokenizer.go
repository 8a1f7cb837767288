package ports

import "github.com/CardPass-Solana/backend-infra/core"

// Tokenizer converts between sessions and signed credentials
type Tokenizer interface {
	// Mint signs a credential asserting the session and returns the
	// compact token string.
	Mint(session *core.Session) (string, error)

	// Validate parses and verifies a token (signature, issuer, audience
	// when configured, expiry) and returns the session it asserts.
	Validate(token string) (*core.Session, error)
}
