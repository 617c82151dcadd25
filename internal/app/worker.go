package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ems/internal/messaging/kafka"
	"go-ems/internal/messaging/kafka/producer"
	"go-ems/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultOutboxPollInterval = 3 * time.Second

// RunWorker starts the outbox relay: it polls the outbox table and
// publishes pending events to Kafka until the process is signalled.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connectDatabase()
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	broker, err := kafkaBrokerFromEnv()
	if err != nil {
		return err
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(broker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	pollInterval := defaultOutboxPollInterval
	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid OUTBOX_POLL_INTERVAL %q: %w", raw, err)
		}
		pollInterval = parsed
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		logger,
		pollInterval,
	)
	logger.Info("outbox relay running", zap.Duration("poll_interval", pollInterval))

	waitForShutdown()
	logger.Info("worker shutting down")
	cancel()

	return nil
}

func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
