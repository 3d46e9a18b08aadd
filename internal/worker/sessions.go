package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type SessionCleaner interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

// RunSessionCleanup deletes long-dead sessions every interval until ctx is
// cancelled.
func RunSessionCleanup(ctx context.Context, cleaner SessionCleaner, interval time.Duration, log *zap.Logger) {
	log = log.With(zap.String("worker", "session-cleanup"))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := cleaner.CleanExpiredSessions(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Error("Session cleanup failed", zap.Error(err))
				}
				continue
			}
			if removed > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
