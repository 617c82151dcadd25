package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-ems/internal/shared/connection"

	"gorm.io/gorm"
)

type WorkSummaryRow struct {
	TotalHours  float64
	DaysPresent int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, limit, offset int) ([]Attendance, error)
	CountAll(ctx context.Context) (int64, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	WorkSummary(ctx context.Context, employeeID string) (WorkSummaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto tx so every call below runs inside
// the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, limit, offset int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("date DESC, check_in DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Attendance{}).Count(&total).Error
	return total, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("date = ?", date.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) WorkSummary(ctx context.Context, employeeID string) (WorkSummaryRow, error) {
	var row WorkSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(hours_worked), 0) AS total_hours,
			COUNT(*)                        AS days_present
		FROM attendance
		WHERE employee_id = ? AND status = ?
	`, employeeID, StatusCheckOut).Scan(&row).Error
	return row, err
}
