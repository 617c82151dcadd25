package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification types mirror the event types that produce them.
const (
	TypeAttendanceCorrected = "attendance.corrected"
	TypeLeaveDecided        = "leave.decided"
	TypeTaskAssigned        = "task.assigned"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`

	Type    string `gorm:"type:varchar(50);not null"`
	Title   string `gorm:"type:varchar(200);not null"`
	Message string `gorm:"type:text"`
	Read    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
