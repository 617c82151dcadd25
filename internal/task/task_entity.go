package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task carries a simple work timer: TimerStartedAt is set while the timer
// runs and TimeSpentSeconds accumulates the closed intervals.
type Task struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_employee"`
	AssignedBy uuid.UUID `gorm:"type:uuid;not null"`

	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	DueDate     *time.Time `gorm:"type:date"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"`

	TimeSpentSeconds int64      `gorm:"type:bigint;not null;default:0"`
	TimerStartedAt   *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_tasks_deleted_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
