package scope

import "gorm.io/gorm"

// ByEmployee restricts a query to rows owned by one employee. Repositories
// apply it when the caller's role limits visibility to their own records.
func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// ByUser is the same ownership filter for tables keyed by user id
// (notifications).
func ByUser(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
