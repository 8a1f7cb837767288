package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/CardPass-Solana/backend-infra/ports"
)

// RunSweeper evicts expired challenges from the store at a fixed
// interval until ctx is cancelled. A failed iteration is logged and the
// loop continues; sweeping is hygiene, not correctness, since Consume
// enforces expiry on its own.
func RunSweeper(ctx context.Context, s ports.ChallengeStore, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted, err := s.Sweep(ctx)
			if err != nil {
				log.Warn("challenge sweep failed", "error", err)
				continue
			}
			if evicted > 0 {
				log.Debug("swept expired challenges", "evicted", evicted)
			}
		}
	}
}
