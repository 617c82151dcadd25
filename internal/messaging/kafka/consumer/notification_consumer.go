package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConsumeNotificationEvents fans the domain event topics into notification
// rows. The reader is expected to subscribe to all notification-bearing
// topics via GroupTopics; messages for employees without a linked user
// account are committed and skipped.
func ConsumeNotificationEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeRepo employee.Repository,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		if err := handleMessage(ctx, msg, employeeRepo, notificationService, log); err != nil {
			log.Error("handle notification message failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}
	}
}

func handleMessage(
	ctx context.Context,
	msg kafkago.Message,
	employeeRepo employee.Repository,
	notificationService notification.Service,
	log *zap.Logger,
) error {
	var (
		employeeID string
		notifType  string
		title      string
		body       string
	)

	switch msg.Topic {
	case events.AttendanceCorrectedTopic:
		var event events.AttendanceCorrectedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance corrected event failed", zap.Error(err))
			return nil
		}
		employeeID = event.EmployeeID
		notifType = events.AttendanceCorrectedEventType
		title = "Attendance corrected"
		body = fmt.Sprintf("Your attendance for %s was corrected to %q. Reason: %s", event.Date, event.Status, event.Reason)

	case events.LeaveDecidedTopic:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			return nil
		}
		employeeID = event.EmployeeID
		notifType = events.LeaveDecidedEventType
		title = fmt.Sprintf("Leave request %s", event.Status)
		body = fmt.Sprintf("Your leave request was %s.", event.Status)
		if event.Reason != "" {
			body = fmt.Sprintf("Your leave request was %s. Reason: %s", event.Status, event.Reason)
		}

	case events.TaskAssignedTopic:
		var event events.TaskAssignedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode task assigned event failed", zap.Error(err))
			return nil
		}
		employeeID = event.EmployeeID
		notifType = events.TaskAssignedEventType
		title = "New task assigned"
		body = fmt.Sprintf("You were assigned a new task: %s", event.Title)

	default:
		log.Warn("unexpected topic, skipping", zap.String("topic", msg.Topic))
		return nil
	}

	emp, err := employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("employee no longer exists, skipping",
				zap.String("employee_id", employeeID),
				zap.String("topic", msg.Topic),
			)
			return nil
		}
		return fmt.Errorf("resolve employee %s: %w", employeeID, err)
	}
	if emp.UserID == nil {
		log.Warn("employee has no linked user account, skipping",
			zap.String("employee_id", employeeID),
			zap.String("topic", msg.Topic),
		)
		return nil
	}

	if err := notificationService.Notify(ctx, *emp.UserID, notifType, title, body); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	log.Info("notification created",
		zap.String("employee_id", employeeID),
		zap.String("user_id", emp.UserID.String()),
		zap.String("type", notifType),
	)
	return nil
}
