package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID *uuid.UUID     `gorm:"column:employee_id;type:uuid;index"`
	Username   string         `gorm:"column:username;type:varchar(100);not null;uniqueIndex:uq_users_username"`
	Password   string         `gorm:"column:password;type:text;not null"`
	Role       string         `gorm:"column:role;type:varchar(20);not null;default:employee"`
	IsActive   bool           `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
