package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CardPass-Solana/backend-infra/core"
)

func testChallenge(nonce string, ttl time.Duration) *core.Challenge {
	now := time.Now().UTC()
	return &core.Challenge{
		ID:        "id-" + nonce,
		Wallet:    "9aE476sH92VsVUvirLE4kC1DbpcUQeJKVArEjg2b2yTe",
		Nonce:     nonce,
		Domain:    "cardpass.io",
		Message:   "message for " + nonce,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestConsumeUnknownNonce(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Consume(context.Background(), "never-issued")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestPutAndConsume(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testChallenge("n1", time.Minute)))

	got, err := s.Consume(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "n1", got.Nonce)
	assert.Equal(t, "message for n1", got.Message)
	assert.True(t, got.Used)

	// Second consume must never succeed.
	_, err = s.Consume(ctx, "n1")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestConsumeReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := testChallenge("n1", time.Minute)
	require.NoError(t, s.Put(ctx, original))

	got, err := s.Consume(ctx, "n1")
	require.NoError(t, err)

	got.Message = "mutated"
	assert.Equal(t, "message for n1", original.Message)
}

func TestConsumeExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testChallenge("stale", -time.Second)))

	_, err := s.Consume(ctx, "stale")
	assert.ErrorIs(t, err, core.ErrChallengeExpired)

	// Expired entry is evicted on first observation.
	_, err = s.Consume(ctx, "stale")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testChallenge("contested", time.Minute)))

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Consume(ctx, "contested")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, core.ErrChallengeNotFound)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestSweepEvictsOnlyExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testChallenge("live", time.Minute)))
	require.NoError(t, s.Put(ctx, testChallenge("dead1", -time.Second)))
	require.NoError(t, s.Put(ctx, testChallenge("dead2", -time.Minute)))

	evicted, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, s.Len())

	got, err := s.Consume(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "live", got.Nonce)
}
