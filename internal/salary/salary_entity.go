package salary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Salary is one pay-period record. Net is stored denormalized so list
// queries avoid recomputing it per row.
type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_salaries_employee"`

	BaseSalary float64 `gorm:"type:numeric(12,2);not null"`
	Bonus      float64 `gorm:"type:numeric(12,2);not null;default:0"`
	Deductions float64 `gorm:"type:numeric(12,2);not null;default:0"`
	Net        float64 `gorm:"type:numeric(12,2);not null"`

	PayDate time.Time `gorm:"type:date;not null"`
	Status  string    `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_salaries_deleted_at"`

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
