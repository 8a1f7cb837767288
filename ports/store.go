package ports

import (
	"context"

	"github.com/CardPass-Solana/backend-infra/core"
)

// ChallengeStore holds outstanding challenges keyed by nonce.
//
// Consume is the load-bearing operation: for a given nonce, at most one
// caller ever receives the challenge, even under concurrent calls. All
// other callers get core.ErrChallengeUsed or core.ErrChallengeNotFound,
// and an expired entry is evicted and reported as core.ErrChallengeExpired
// regardless of whether a sweep has run.
type ChallengeStore interface {
	// Put inserts a challenge record. The nonce is assumed unique.
	Put(ctx context.Context, challenge *core.Challenge) error

	// Consume atomically looks up, invalidates, and removes the record
	// for nonce, returning a copy safe to use outside any lock.
	Consume(ctx context.Context, nonce string) (*core.Challenge, error)

	// Sweep evicts expired records and returns how many were removed.
	// Best-effort hygiene; Consume enforces expiry on its own.
	Sweep(ctx context.Context) (int, error)
}
