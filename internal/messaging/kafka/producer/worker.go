package producer

import (
	"context"
	"time"

	"hr-portal/internal/messaging/kafka"

	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Relay moves pending outbox rows to Kafka. It is driven by the worker's
// scheduler; each call to PublishPending handles a single batch.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	batchSize int
	logger    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, batchSize int, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		batchSize: batchSize,
		logger:    l,
	}
}

// PublishPending returns the number of events delivered in this batch.
func (r *Relay) PublishPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, r.writer, event); err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed",
					zap.String("outbox_id", event.ID),
					zap.Error(markErr),
				)
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}

// PurgeSent removes delivered rows processed before now-retention.
func (r *Relay) PurgeSent(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	n, err := r.repo.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
	return n, nil
}
