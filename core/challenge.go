package core

import "time"

// MinWalletLength is the shortest address accepted for a challenge.
// Addresses are otherwise opaque to this package; the verifier decides
// whether they decode to usable key material.
const MinWalletLength = 20

// Challenge represents one outstanding login attempt
type Challenge struct {
	ID        string    // Unique identifier for the challenge
	Wallet    string    // Claimed wallet address of the user
	Nonce     string    // Random single-use token, primary key of the store
	Purpose   string    // Caller-supplied context, embedded in message and session
	Domain    string    // Signing domain, embedded in message and session
	Message   string    // Exact statement the client must sign, computed at issuance
	IssuedAt  time.Time // When the challenge was created
	ExpiresAt time.Time // When the challenge expires
	Used      bool      // Write-once; set by the consume path
}

// Expired reports whether the challenge is past its lifetime at now.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Session represents an authenticated wallet session as carried by a
// minted credential. It is never stored server-side.
type Session struct {
	Wallet    string    // Authenticated wallet address (token subject)
	Nonce     string    // Nonce consumed to obtain the session
	Purpose   string    // Copied from the originating challenge
	Domain    string    // Copied from the originating challenge
	Issuer    string    // Token issuer
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}
