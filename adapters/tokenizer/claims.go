package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with the challenge metadata
// carried into the session. Subject is the authenticated wallet address.
type SessionClaims struct {
	jwt.RegisteredClaims
	Nonce   string `json:"nonce"`
	Purpose string `json:"purpose,omitempty"`
	Domain  string `json:"domain"`
}
