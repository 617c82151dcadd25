package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-ems/internal/domain"
	leaveerrors "go-ems/internal/leave/errors"
	"go-ems/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createFn               func(ctx context.Context, l *Leave) error
	findAllFn              func(ctx context.Context) ([]Leave, error)
	findAllByEmployeeFn    func(ctx context.Context, employeeID string) ([]Leave, error)
	findByIDFn             func(ctx context.Context, id string) (*Leave, error)
	updateFn               func(ctx context.Context, l *Leave) error
	deleteFn               func(ctx context.Context, id string) error
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository       { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Leave, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, l *Leave) error { return f.updateFn(ctx, l) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate, excludeID)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	actor := Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee}

	var saved Leave
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, l *Leave) error { saved = *l; return nil }
	repo.hasOverlappingPeriodFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return false, nil
	}

	svc := NewService(db, repo, &fakeOutbox{})
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), actor, CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  TypeAnnual,
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-10",
		Reason:     "family trip",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 5, resp.TotalDays)
	assert.Equal(t, StatusPending, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	actor := Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlappingPeriodFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	svc := NewService(db, repo, &fakeOutbox{})
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), actor, CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  TypeSick,
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-07",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	actor := Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee}
	svc := NewService(db, &fakeRepo{}, &fakeOutbox{})
	ctx := context.Background()

	_, err := svc.Create(ctx, actor, CreateLeaveRequest{EmployeeID: uuid.New().String(), LeaveType: TypeAnnual, StartDate: "2026-04-06", EndDate: "2026-04-07"})
	assert.ErrorIs(t, err, leaveerrors.ErrNotOwnLeave)

	_, err = svc.Create(ctx, actor, CreateLeaveRequest{EmployeeID: employeeID, LeaveType: TypeAnnual, StartDate: "soon", EndDate: "2026-04-07"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)

	_, err = svc.Create(ctx, actor, CreateLeaveRequest{EmployeeID: employeeID, LeaveType: TypeAnnual, StartDate: "2026-04-10", EndDate: "2026-04-06"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestService_ApproveAndReject(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}
	leaveID := uuid.New()

	pending := func() *Leave {
		return &Leave{ID: leaveID, EmployeeID: uuid.New(), Status: StatusPending}
	}
	var saved Leave
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return pending(), nil }
	repo.updateFn = func(ctx context.Context, l *Leave) error { saved = *l; return nil }

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), admin, leaveID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, saved.DecidedBy)
	assert.NotNil(t, saved.DecidedAt)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Reject(context.Background(), admin, leaveID.String(), "headcount freeze")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)
	if assert.NotNil(t, resp.RejectionReason) {
		assert.Equal(t, "headcount freeze", *resp.RejectionReason)
	}

	assert.Len(t, outbox.created, 2)
	assert.Equal(t, "ems.leave.decided", outbox.created[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_Guards(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	managerEmployeeID := uuid.New().String()
	manager := Actor{UserID: uuid.New().String(), EmployeeID: managerEmployeeID, Role: domain.RoleManager}

	decided := &Leave{ID: uuid.New(), EmployeeID: uuid.New(), Status: StatusApproved}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return decided, nil }

	svc := NewService(db, repo, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), manager, decided.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)

	own := &Leave{ID: uuid.New(), EmployeeID: uuid.MustParse(managerEmployeeID), Status: StatusPending}
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return own, nil }

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), manager, own.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrOwnLeaveDecision)

	_, err = svc.Reject(context.Background(), manager, own.ID.String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_RoleFiltered(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Leave, error) {
		return []Leave{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]Leave, error) {
		assert.Equal(t, employeeID, eid)
		return []Leave{{ID: uuid.New()}}, nil
	}

	svc := NewService(db, repo, &fakeOutbox{})
	ctx := context.Background()

	all, err := svc.GetAll(ctx, Actor{UserID: uuid.New().String(), Role: domain.RoleManager})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := svc.GetAll(ctx, Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestService_Delete_OwnerPendingOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	owner := Actor{UserID: uuid.New().String(), EmployeeID: employeeID, Role: domain.RoleEmployee}

	approved := &Leave{ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Status: StatusApproved}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return approved, nil }
	repo.deleteFn = func(ctx context.Context, id string) error { return nil }

	svc := NewService(db, repo, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), owner, approved.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrPendingOnly)

	pending := &Leave{ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Status: StatusPending}
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return pending, nil }

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(context.Background(), owner, pending.ID.String())
	assert.NoError(t, err)

	other := Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Delete(context.Background(), other, pending.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrNotOwnLeave)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeOutbox{})
	_, err := svc.GetByID(context.Background(), Actor{Role: domain.RoleAdmin}, uuid.New().String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}
