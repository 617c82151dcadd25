package salary

import (
	"context"
	"database/sql"

	"go-ems/internal/shared/connection"
	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	Update(ctx context.Context, s *Salary) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("pay_date DESC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("pay_date DESC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Salary{}, "id = ?", id).Error
}
