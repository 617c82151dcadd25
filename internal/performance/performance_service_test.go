package performance

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-ems/internal/domain"
	performanceerrors "go-ems/internal/performance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, e *Evaluation) error
	findAllFn           func(ctx context.Context) ([]Evaluation, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Evaluation, error)
	findByIDFn          func(ctx context.Context, id string) (*Evaluation, error)
	updateFn            func(ctx context.Context, e *Evaluation) error
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Evaluation) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Evaluation, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Evaluation, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, e *Evaluation) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	manager := Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleManager}
	employeeID := uuid.New().String()

	var saved Evaluation
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Evaluation) error { saved = *e; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), manager, CreateEvaluationRequest{
		EmployeeID: employeeID,
		Period:     "2026-Q1",
		Score:      4,
		Feedback:   "consistent delivery, needs more code review depth",
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Score)
	assert.Equal(t, manager.UserID, resp.ReviewerID)
	assert.Equal(t, "2026-Q1", saved.Period)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_SelfEvaluation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	manager := Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleManager}

	svc := NewService(db, &fakeRepo{})
	_, err := svc.Create(context.Background(), manager, CreateEvaluationRequest{
		EmployeeID: employeeID,
		Period:     "2026-Q1",
		Score:      5,
	})
	assert.ErrorIs(t, err, performanceerrors.ErrSelfEvaluation)
}

func TestService_Create_DuplicatePeriod(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	manager := Actor{UserID: uuid.New().String(), Role: domain.RoleManager}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Evaluation) error {
		return errors.New(`ERROR: duplicate key value violates unique constraint "uq_evaluations_employee_period" (SQLSTATE 23505)`)
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), manager, CreateEvaluationRequest{
		EmployeeID: uuid.New().String(),
		Period:     "2026-Q1",
		Score:      3,
	})
	assert.ErrorIs(t, err, performanceerrors.ErrDuplicatePeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_RoleFiltered(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Evaluation, error) {
		return []Evaluation{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]Evaluation, error) {
		assert.Equal(t, employeeID, eid)
		return []Evaluation{{ID: uuid.New()}}, nil
	}

	svc := NewService(db, repo)
	ctx := context.Background()

	all, err := svc.GetAll(ctx, Actor{Role: domain.RoleAdmin})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.GetAll(ctx, Actor{EmployeeID: employeeID, Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestService_Update_SelfGuard(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	managerEmployeeID := uuid.New()
	manager := Actor{UserID: uuid.New().String(), EmployeeID: managerEmployeeID.String(), Role: domain.RoleManager}

	own := &Evaluation{ID: uuid.New(), EmployeeID: managerEmployeeID, Score: 3}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Evaluation, error) { return own, nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), manager, own.ID.String(), UpdateEvaluationRequest{Score: 5})
	assert.ErrorIs(t, err, performanceerrors.ErrSelfEvaluation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_Ownership(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	record := &Evaluation{ID: uuid.New(), EmployeeID: ownerID, Score: 4}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Evaluation, error) { return record, nil }

	svc := NewService(db, repo)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, Actor{EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}, record.ID.String())
	assert.ErrorIs(t, err, performanceerrors.ErrNotOwnEvaluation)

	resp, err := svc.GetByID(ctx, Actor{EmployeeID: ownerID.String(), Role: domain.RoleEmployee}, record.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Score)

	repo.findByIDFn = func(ctx context.Context, id string) (*Evaluation, error) { return nil, gorm.ErrRecordNotFound }
	_, err = svc.GetByID(ctx, Actor{Role: domain.RoleAdmin}, uuid.New().String())
	assert.ErrorIs(t, err, performanceerrors.ErrEvaluationNotFound)
}
