package task

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/messaging/kafka"
	taskerrors "go-ems/internal/task/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, t *Task) error
	findAllFn           func(ctx context.Context) ([]Task, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Task, error)
	findByIDFn          func(ctx context.Context, id string) (*Task, error)
	updateFn            func(ctx context.Context, t *Task) error
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, t *Task) error { return f.createFn(ctx, t) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Task, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Task, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Task, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, t *Task) error { return f.updateFn(ctx, t) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

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

func TestService_Create_QueuesAssignedEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	manager := Actor{UserID: uuid.New().String(), Role: domain.RoleManager}
	employeeID := uuid.New().String()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, tk *Task) error { return nil }

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), manager, CreateTaskRequest{
		EmployeeID: employeeID,
		Title:      "migrate billing exports",
		DueDate:    "2026-04-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "ems.task.assigned", outbox.created[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_TimerStartStop(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	assignee := Actor{UserID: uuid.New().String(), EmployeeID: employeeID.String(), Role: domain.RoleEmployee}

	stored := &Task{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		AssignedBy:       uuid.New(),
		Status:           StatusPending,
		TimeSpentSeconds: 120,
	}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) {
		copied := *stored
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, tk *Task) error { *stored = *tk; return nil }

	svc := NewService(db, repo, &fakeOutbox{}).(*service)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.StartTimer(context.Background(), assignee, stored.ID.String())
	assert.NoError(t, err)
	assert.True(t, resp.TimerRunning)
	assert.Equal(t, StatusInProgress, resp.Status)

	// starting again while running conflicts
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.StartTimer(context.Background(), assignee, stored.ID.String())
	assert.ErrorIs(t, err, taskerrors.ErrTimerAlreadyRunning)

	// 35 minutes later
	svc.now = func() time.Time { return start.Add(35 * time.Minute) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.StopTimer(context.Background(), assignee, stored.ID.String())
	assert.NoError(t, err)
	assert.False(t, resp.TimerRunning)
	assert.Equal(t, int64(120+35*60), resp.TimeSpentSeconds)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.StopTimer(context.Background(), assignee, stored.ID.String())
	assert.ErrorIs(t, err, taskerrors.ErrTimerNotRunning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Timer_AssigneeOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := &Task{ID: uuid.New(), EmployeeID: uuid.New(), AssignedBy: uuid.New()}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) { return stored, nil }

	svc := NewService(db, repo, &fakeOutbox{})

	other := Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleManager}
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.StartTimer(context.Background(), other, stored.ID.String())
	assert.ErrorIs(t, err, taskerrors.ErrTimerNotAssignee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	assignee := Actor{UserID: uuid.New().String(), EmployeeID: employeeID.String(), Role: domain.RoleEmployee}

	timerStart := time.Now().UTC().Add(-10 * time.Minute)
	stored := &Task{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AssignedBy:     uuid.New(),
		Status:         StatusInProgress,
		TimerStartedAt: &timerStart,
	}
	var saved Task
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) {
		copied := *stored
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, tk *Task) error { saved = *tk; return nil }

	svc := NewService(db, repo, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateStatus(context.Background(), assignee, stored.ID.String(), UpdateTaskStatusRequest{Status: StatusCompleted})
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	// the open timer interval was folded into the accumulator
	assert.Nil(t, saved.TimerStartedAt)
	assert.GreaterOrEqual(t, saved.TimeSpentSeconds, int64(590))

	completed := &Task{ID: uuid.New(), EmployeeID: employeeID, AssignedBy: uuid.New(), Status: StatusCompleted}
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) { return completed, nil }
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.UpdateStatus(context.Background(), assignee, completed.ID.String(), UpdateTaskStatusRequest{Status: StatusPending})
	assert.ErrorIs(t, err, taskerrors.ErrCompletedImmutable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateStatus_NotAssignee(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := &Task{ID: uuid.New(), EmployeeID: uuid.New(), AssignedBy: uuid.New(), Status: StatusPending}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) { return stored, nil }

	svc := NewService(db, repo, &fakeOutbox{})

	other := Actor{UserID: uuid.New().String(), EmployeeID: uuid.New().String(), Role: domain.RoleEmployee}
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.UpdateStatus(context.Background(), other, stored.ID.String(), UpdateTaskStatusRequest{Status: StatusInProgress})
	assert.ErrorIs(t, err, taskerrors.ErrNotAssignee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_RoleFiltered(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Task, error) {
		return []Task{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]Task, error) {
		assert.Equal(t, employeeID, eid)
		return []Task{{ID: uuid.New()}}, nil
	}

	svc := NewService(db, repo, &fakeOutbox{})
	ctx := context.Background()

	all, err := svc.GetAll(ctx, Actor{Role: domain.RoleManager})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.GetAll(ctx, Actor{EmployeeID: employeeID, Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Task, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeOutbox{})
	_, err := svc.GetByID(context.Background(), Actor{Role: domain.RoleAdmin}, uuid.New().String())
	assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
}
