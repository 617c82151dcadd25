package performance

import (
	"context"
	"database/sql"

	"go-ems/internal/shared/connection"
	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Evaluation) error
	FindAll(ctx context.Context) ([]Evaluation, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error)
	FindByID(ctx context.Context, id string) (*Evaluation, error)
	Update(ctx context.Context, e *Evaluation) error
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

func (r *repository) Create(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Evaluation, error) {
	var evaluations []Evaluation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("period DESC, created_at DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	var evaluations []Evaluation
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("period DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Evaluation, error) {
	var e Evaluation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Evaluation{}, "id = ?", id).Error
}
