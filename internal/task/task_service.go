package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"
	taskerrors "go-ems/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, actor Actor) ([]TaskResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (TaskResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateTaskStatusRequest) (TaskResponse, error)
	StartTimer(ctx context.Context, actor Actor, id string) (TaskResponse, error)
	StopTimer(ctx context.Context, actor Actor, id string) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateTaskRequest) (TaskResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidEmployeeID
	}
	assignedBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidEmployeeID
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return TaskResponse{}, taskerrors.ErrInvalidDueDate
		}
		dueDate = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Task{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		AssignedBy:  assignedBy,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      StatusPending,
	}

	if err := qtx.Create(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueAssignedEvent(ctx, tx, t, actor); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("title", req.Title),
	)
	return mapToResponse(*t), nil
}

func (s *service) queueAssignedEvent(ctx context.Context, tx *sql.Tx, t *Task, actor Actor) error {
	event := events.TaskAssignedEvent{
		EventType:  events.TaskAssignedEventType,
		TaskID:     t.ID.String(),
		EmployeeID: t.EmployeeID.String(),
		Title:      t.Title,
		AssignedBy: actor.UserID,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "task",
		AggregateID:   t.ID.String(),
		EventType:     events.TaskAssignedEventType,
		Topic:         events.TaskAssignedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, actor Actor) ([]TaskResponse, error) {
	if !domain.IsPrivileged(actor.Role) {
		if actor.EmployeeID == "" {
			return nil, taskerrors.ErrEmployeeRecordMissing
		}
		tasks, err := s.repo.FindAllByEmployee(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(tasks), nil
	}

	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	if !domain.IsPrivileged(actor.Role) && actor.EmployeeID != t.EmployeeID.String() {
		return TaskResponse{}, taskerrors.ErrNotAssignee
	}
	return mapToResponse(*t), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateTaskStatusRequest) (TaskResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	if !canMutate(actor, t) {
		return TaskResponse{}, taskerrors.ErrNotAssignee
	}
	if t.Status == StatusCompleted {
		return TaskResponse{}, taskerrors.ErrCompletedImmutable
	}

	now := s.now()
	// Completing a task with a running timer folds the open interval in.
	if req.Status == StatusCompleted && t.TimerStartedAt != nil {
		t.TimeSpentSeconds += int64(now.Sub(*t.TimerStartedAt).Seconds())
		t.TimerStartedAt = nil
	}
	t.Status = req.Status

	if err := qtx.Update(ctx, t); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task status updated",
		zap.String("task_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*t), nil
}

func (s *service) StartTimer(ctx context.Context, actor Actor, id string) (TaskResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	if actor.EmployeeID == "" || actor.EmployeeID != t.EmployeeID.String() {
		return TaskResponse{}, taskerrors.ErrTimerNotAssignee
	}
	if t.TimerStartedAt != nil {
		return TaskResponse{}, taskerrors.ErrTimerAlreadyRunning
	}

	now := s.now()
	t.TimerStartedAt = &now
	if t.Status == StatusPending {
		t.Status = StatusInProgress
	}

	if err := qtx.Update(ctx, t); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task timer started", zap.String("task_id", id))
	return mapToResponse(*t), nil
}

func (s *service) StopTimer(ctx context.Context, actor Actor, id string) (TaskResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	if actor.EmployeeID == "" || actor.EmployeeID != t.EmployeeID.String() {
		return TaskResponse{}, taskerrors.ErrTimerNotAssignee
	}
	if t.TimerStartedAt == nil {
		return TaskResponse{}, taskerrors.ErrTimerNotRunning
	}

	elapsed := int64(s.now().Sub(*t.TimerStartedAt).Seconds())
	t.TimeSpentSeconds += elapsed
	t.TimerStartedAt = nil

	if err := qtx.Update(ctx, t); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task timer stopped",
		zap.String("task_id", id),
		zap.Int64("elapsed_seconds", elapsed),
		zap.Int64("time_spent_seconds", t.TimeSpentSeconds),
	)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskerrors.ErrTaskNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}

func canMutate(actor Actor, t *Task) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if actor.UserID != "" && actor.UserID == t.AssignedBy.String() {
		return true
	}
	return actor.EmployeeID != "" && actor.EmployeeID == t.EmployeeID.String()
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:               t.ID.String(),
		EmployeeID:       t.EmployeeID.String(),
		AssignedBy:       t.AssignedBy.String(),
		Title:            t.Title,
		Description:      t.Description,
		Status:           t.Status,
		TimeSpentSeconds: t.TimeSpentSeconds,
		TimerRunning:     t.TimerStartedAt != nil,
	}
	if t.Employee != nil {
		resp.EmployeeName = t.Employee.FirstName + " " + t.Employee.LastName
	}
	if t.DueDate != nil {
		v := t.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	return resp
}

func mapToListResponse(tasks []Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp
}
