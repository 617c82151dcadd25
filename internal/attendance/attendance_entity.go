package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Normal-flow statuses. A day moves check-in -> check-out, or straight to
// absent; both end states are terminal outside the correction path.
const (
	StatusCheckIn  = "check-in"
	StatusCheckOut = "check-out"
	StatusAbsent   = "absent"
)

// Correction-only statuses, settable by managers and admins.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusOnLeave = "on-leave"
	StatusHalfDay = "half-day"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusCheckIn, StatusCheckOut, StatusAbsent,
		StatusPresent, StatusLate, StatusOnLeave, StatusHalfDay:
		return true
	default:
		return false
	}
}

// Attendance is one employee's presence state for one calendar day. The
// unique index on (employee_id, date) makes "first action of the day wins"
// hold even under concurrent double-submission.
type Attendance struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	Date             time.Time    `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn          *time.Time   `gorm:"column:check_in;type:timestamptz"`
	CheckOut         *time.Time   `gorm:"column:check_out;type:timestamptz"`
	Status           string       `gorm:"column:status;type:varchar(20);not null"`
	HoursWorked      *float64     `gorm:"column:hours_worked;type:numeric(5,2)"`
	CorrectedBy      *uuid.UUID   `gorm:"column:corrected_by;type:uuid"`
	CorrectionReason *string      `gorm:"column:correction_reason;type:text"`
	CorrectionTime   *time.Time   `gorm:"column:correction_time;type:timestamptz"`
	CreatedAt        time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time    `gorm:"column:updated_at;autoUpdateTime"`
	Employee         *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
