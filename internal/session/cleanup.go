package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartCleanup sweeps sessions older than ttl every interval until ctx ends.
func (s *Store) StartCleanup(ctx context.Context, interval, ttl time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(s.now().Add(-ttl))
			if err != nil {
				log.Error("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired contact sessions removed", zap.Int("count", n))
			}
		}
	}
}
