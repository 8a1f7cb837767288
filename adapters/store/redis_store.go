package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CardPass-Solana/backend-infra/core"
	"github.com/CardPass-Solana/backend-infra/ports"
)

// RedisStore is a Redis implementation of the ChallengeStore interface
// for multi-instance deployments. Records are stored as JSON with a TTL
// matching the challenge lifetime; GETDEL makes Consume atomic across
// processes, so at most one instance ever obtains a given nonce. Expired
// entries disappear via Redis TTL, which also makes Sweep a no-op.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed challenge store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "auth:challenge:",
	}
}

var _ ports.ChallengeStore = (*RedisStore)(nil)

type challengeRecord struct {
	ID        string    `json:"id"`
	Wallet    string    `json:"wallet"`
	Nonce     string    `json:"nonce"`
	Purpose   string    `json:"purpose,omitempty"`
	Domain    string    `json:"domain"`
	Message   string    `json:"message"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Put inserts a challenge record with a TTL equal to its remaining lifetime.
func (s *RedisStore) Put(ctx context.Context, challenge *core.Challenge) error {
	rec := challengeRecord{
		ID:        challenge.ID,
		Wallet:    challenge.Wallet,
		Nonce:     challenge.Nonce,
		Purpose:   challenge.Purpose,
		Domain:    challenge.Domain,
		Message:   challenge.Message,
		IssuedAt:  challenge.IssuedAt,
		ExpiresAt: challenge.ExpiresAt,
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.prefix+challenge.Nonce, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Consume atomically retrieves and deletes the challenge for nonce.
func (s *RedisStore) Consume(ctx context.Context, nonce string) (*core.Challenge, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+nonce).Result()
	if err != nil {
		if err == redis.Nil {
			// Unknown, expired-by-TTL, and already-consumed all look the
			// same here, which matches what callers are allowed to learn.
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	var rec challengeRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	challenge := &core.Challenge{
		ID:        rec.ID,
		Wallet:    rec.Wallet,
		Nonce:     rec.Nonce,
		Purpose:   rec.Purpose,
		Domain:    rec.Domain,
		Message:   rec.Message,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
		Used:      true,
	}

	if challenge.Expired(time.Now()) {
		return nil, core.ErrChallengeExpired
	}

	return challenge, nil
}

// Sweep is a no-op; Redis evicts expired records through key TTLs.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}
