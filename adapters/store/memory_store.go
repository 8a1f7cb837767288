package store

import (
	"context"
	"sync"
	"time"

	"github.com/CardPass-Solana/backend-infra/core"
	"github.com/CardPass-Solana/backend-infra/ports"
)

// MemoryStore is an in-process implementation of the ChallengeStore
// interface. A single mutex serializes every operation; Consume performs
// the whole check-expiry/check-used/mark-used/delete sequence inside one
// critical section so a nonce can never yield two sessions.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[string]*core.Challenge
}

// NewMemoryStore creates a new in-memory challenge store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges: make(map[string]*core.Challenge),
	}
}

var _ ports.ChallengeStore = (*MemoryStore)(nil)

// Put inserts a challenge record keyed by its nonce.
func (s *MemoryStore) Put(ctx context.Context, challenge *core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *challenge
	s.challenges[challenge.Nonce] = &cp
	return nil
}

// Consume atomically retrieves and invalidates the challenge for nonce.
func (s *MemoryStore) Consume(ctx context.Context, nonce string) (*core.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[nonce]
	if !ok {
		return nil, core.ErrChallengeNotFound
	}

	if challenge.Expired(time.Now()) {
		delete(s.challenges, nonce)
		return nil, core.ErrChallengeExpired
	}

	if challenge.Used {
		return nil, core.ErrChallengeUsed
	}

	challenge.Used = true
	delete(s.challenges, nonce)

	cp := *challenge
	return &cp, nil
}

// Sweep evicts every expired record.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	evicted := 0
	for nonce, challenge := range s.challenges {
		if challenge.Expired(now) {
			delete(s.challenges, nonce)
			evicted++
		}
	}
	return evicted, nil
}

// Len returns the number of outstanding challenges. Used by tests and
// diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
