package performance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Evaluation is one reviewer's scoring of an employee for a period
// ("2026-Q1", "2026-H2"). One evaluation per employee and period.
type Evaluation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_evaluations_employee_period"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"`

	Period   string `gorm:"type:varchar(20);not null;uniqueIndex:uq_evaluations_employee_period"`
	Score    int    `gorm:"type:int;not null"`
	Feedback string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_evaluations_deleted_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Evaluation) TableName() string {
	return "performance_evaluations"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
