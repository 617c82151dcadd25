package salary

import (
	"context"
	"database/sql"
	"testing"

	"go-ems/internal/domain"
	salaryerrors "go-ems/internal/salary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, s *Salary) error
	findAllFn           func(ctx context.Context) ([]Salary, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Salary, error)
	findByIDFn          func(ctx context.Context, id string) (*Salary, error)
	updateFn            func(ctx context.Context, s *Salary) error
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository        { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, s *Salary) error { return f.createFn(ctx, s) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Salary, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Salary, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Salary) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestService_Create_ComputesNet(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Salary
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, s *Salary) error { saved = *s; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateSalaryRequest{
		EmployeeID: uuid.New().String(),
		BaseSalary: 5200,
		Bonus:      300.50,
		Deductions: 412.25,
		PayDate:    "2026-03-31",
	})
	assert.NoError(t, err)
	assert.Equal(t, 5088.25, resp.Net)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 5088.25, saved.Net)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSalaryRequest{EmployeeID: "nope", BaseSalary: 100, PayDate: "2026-03-31"})
	assert.ErrorIs(t, err, salaryerrors.ErrInvalidEmployeeID)

	_, err = svc.Create(ctx, CreateSalaryRequest{EmployeeID: uuid.New().String(), BaseSalary: -1, PayDate: "2026-03-31"})
	assert.ErrorIs(t, err, salaryerrors.ErrNegativeAmount)

	_, err = svc.Create(ctx, CreateSalaryRequest{EmployeeID: uuid.New().String(), BaseSalary: 100, PayDate: "end of month"})
	assert.ErrorIs(t, err, salaryerrors.ErrInvalidPayDate)
}

func TestService_GetAll_RoleFiltered(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Salary, error) {
		return []Salary{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]Salary, error) {
		assert.Equal(t, employeeID, eid)
		return []Salary{{ID: uuid.New()}}, nil
	}

	svc := NewService(db, repo)
	ctx := context.Background()

	all, err := svc.GetAll(ctx, Actor{Role: domain.RoleManager})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.GetAll(ctx, Actor{EmployeeID: employeeID, Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = svc.GetAll(ctx, Actor{Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, salaryerrors.ErrEmployeeRecordMissing)
}

func TestService_GetByID_OwnershipCheck(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ownerEmployeeID := uuid.New()
	record := &Salary{ID: uuid.New(), EmployeeID: ownerEmployeeID, Net: 4800}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Salary, error) { return record, nil }

	svc := NewService(db, repo)
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, Actor{EmployeeID: ownerEmployeeID.String(), Role: domain.RoleEmployee}, record.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 4800.0, resp.Net)

	_, err = svc.GetByID(ctx, Actor{EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}, record.ID.String())
	assert.ErrorIs(t, err, salaryerrors.ErrNotOwnSalary)

	repo.findByIDFn = func(ctx context.Context, id string) (*Salary, error) { return nil, gorm.ErrRecordNotFound }
	_, err = svc.GetByID(ctx, Actor{Role: domain.RoleAdmin}, uuid.New().String())
	assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
}

func TestService_MarkPaid(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	record := &Salary{ID: uuid.New(), EmployeeID: uuid.New(), Status: StatusPending}
	var saved Salary
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Salary, error) { return record, nil }
	repo.updateFn = func(ctx context.Context, s *Salary) error { saved = *s; return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.MarkPaid(context.Background(), record.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, resp.Status)
	assert.NotNil(t, saved.PaidAt)

	paid := &Salary{ID: uuid.New(), Status: StatusPaid}
	repo.findByIDFn = func(ctx context.Context, id string) (*Salary, error) { return paid, nil }
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.MarkPaid(context.Background(), paid.ID.String())
	assert.ErrorIs(t, err, salaryerrors.ErrAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
