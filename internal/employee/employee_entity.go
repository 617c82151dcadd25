package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         *uuid.UUID     `gorm:"column:user_id;type:uuid;index"`
	EmployeeNumber string         `gorm:"column:employee_number;type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FirstName      string         `gorm:"column:first_name;type:varchar(100);not null"`
	LastName       string         `gorm:"column:last_name;type:varchar(100);not null"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex:uq_employee_email"`
	Position       string         `gorm:"column:position;type:varchar(100)"`
	Department     string         `gorm:"column:department;type:varchar(100)"`
	HireDate       time.Time      `gorm:"column:hire_date;type:date;not null"`
	Salary         float64        `gorm:"column:salary;type:numeric(12,2);default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
