package app

import (
	"context"
	"errors"
	"time"

	"hr-portal/internal/config"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/messaging/kafka/producer"
	"hr-portal/internal/metrics"
	"hr-portal/internal/shared/connection"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	kafkaMaxRetries = 5
	purgeInterval   = time.Hour
)

// RunWorker relays outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, kafkaMaxRetries, logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	relay := producer.NewRelay(kafka.NewOutboxRepository(gormDB), writer, cfg.Outbox.BatchSize, logger)

	scheduler, err := newScheduler(ctx, relay, cfg.Outbox, log)
	if err != nil {
		return err
	}

	scheduler.Start()
	log.Info("worker started",
		zap.Duration("poll_interval", cfg.Outbox.PollInterval),
		zap.Duration("retention", cfg.Outbox.Retention),
	)

	<-ctx.Done()
	log.Info("worker shutting down")
	return scheduler.Shutdown()
}

func newScheduler(ctx context.Context, relay *producer.Relay, cfg config.OutboxConfig, log *zap.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.PollInterval),
		gocron.NewTask(func() {
			published, err := relay.PublishPending(ctx)
			if published > 0 {
				metrics.OutboxPublished.Add(float64(published))
			}
			if err != nil && ctx.Err() == nil {
				log.Error("outbox relay failed", zap.Error(err))
			}
		}),
		gocron.WithName("outbox-relay"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(purgeInterval),
		gocron.NewTask(func() {
			if _, err := relay.PurgeSent(ctx, cfg.Retention); err != nil {
				log.Error("outbox purge failed", zap.Error(err))
			}
		}),
		gocron.WithName("outbox-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return scheduler, nil
}
