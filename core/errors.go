package core

import "errors"

var (
	ErrInvalidWallet     = errors.New("invalid wallet address")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeExpired  = errors.New("challenge has expired")
	ErrChallengeUsed     = errors.New("challenge already used")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrTokenExpired      = errors.New("token has expired")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownEncoding   = errors.New("unknown signature encoding")
	ErrStoreUnavailable  = errors.New("challenge store unavailable")
)

// ChallengeNotUsable reports whether err is one of the consume failures
// that must stay indistinguishable to the caller (unknown, expired, or
// already-consumed nonce).
func ChallengeNotUsable(err error) bool {
	return errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrChallengeExpired) ||
		errors.Is(err, ErrChallengeUsed)
}
