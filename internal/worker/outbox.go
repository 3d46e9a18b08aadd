// Package worker holds the background loops started next to the HTTP server.
package worker

import (
	"context"
	"time"

	"hotel-management/internal/data/repository"
	"hotel-management/pkg/queue"

	"go.uber.org/zap"
)

// OutboxRelay publishes events recorded in the outbox table. Delivery is at
// least once: an event is marked published only after the broker accepted it.
type OutboxRelay struct {
	outbox    repository.OutboxRepository
	publisher queue.Publisher
	interval  time.Duration
	batchSize int
	log       *zap.Logger
}

func NewOutboxRelay(outbox repository.OutboxRepository, publisher queue.Publisher, interval time.Duration, batchSize int, log *zap.Logger) *OutboxRelay {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		log:       log.With(zap.String("worker", "outbox")),
	}
}

// Run polls until ctx is cancelled.
func (w *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Outbox relay started", zap.Duration("interval", w.interval))
	for {
		if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			w.log.Error("Outbox relay pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.log.Info("Outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and returns how many events went out. A
// failed publish stops the batch so ordering is kept.
func (w *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	events, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, ev := range events {
		if err := w.publisher.Publish(ctx, ev.Topic, ev.Payload); err != nil {
			w.log.Warn("Publish failed",
				zap.String("event_id", ev.ID.String()),
				zap.String("topic", ev.Topic),
				zap.Int("attempts", ev.Attempts+1),
				zap.Error(err))
			if markErr := w.outbox.MarkFailed(ctx, ev.ID, err); markErr != nil {
				return published, markErr
			}
			return published, nil
		}

		if err := w.outbox.MarkPublished(ctx, ev.ID); err != nil {
			return published, err
		}
		published++
	}

	if published > 0 {
		w.log.Debug("Outbox events published", zap.Int("count", published))
	}
	return published, nil
}
