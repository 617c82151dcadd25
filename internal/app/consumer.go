package app

import (
	"context"

	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka/consumer"
	"go-ems/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationConsumerGroup = "go-ems-notifications"

// RunConsumer reads domain events from Kafka and fans them out as
// in-app notifications until the process is signalled.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	employeeRepo := employee.NewRepository(gormDB)
	notificationService := notification.NewService(notification.NewRepository(gormDB))

	// CommitInterval 0 commits synchronously after each handled message,
	// which keeps redelivery on crash to at most one message per partition.
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupTopics: []string{
			events.AttendanceCorrectedTopic,
			events.LeaveDecidedTopic,
			events.TaskAssignedTopic,
		},
		GroupID:        notificationConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeNotificationEvents(ctx, reader, employeeRepo, notificationService, logger)

	waitForShutdown()
	logger.Info("consumer shutting down")
	cancel()

	return nil
}
