package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/domain"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPageSize = 10

type Service interface {
	CheckIn(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error)
	MarkAbsent(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error)
	Correct(ctx context.Context, actor Actor, req CorrectRequest) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, actor Actor, employeeID string) (*AttendanceResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]AttendanceResponse, int64, error)
	GetByEmployee(ctx context.Context, actor Actor, employeeID string) ([]AttendanceResponse, error)
	GetWorkSummary(ctx context.Context, actor Actor, employeeID string) (WorkSummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// requireSelf enforces the "attendance is recorded by the employee themself"
// rule for every role, managers and admins included.
func requireSelf(actor Actor, employeeID string) error {
	if actor.EmployeeID == "" {
		return attendanceerrors.ErrEmployeeRecordMissing
	}
	if actor.EmployeeID != employeeID {
		return attendanceerrors.ErrNotOwnRecord
	}
	return nil
}

func (s *service) CheckIn(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if err := requireSelf(actor, employeeID); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := dateOnly(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if existing != nil && err == nil {
		switch existing.Status {
		case StatusAbsent:
			return AttendanceResponse{}, attendanceerrors.ErrMarkedAbsentToday
		case StatusCheckIn, StatusCheckOut:
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		default:
			// A corrected record (present/late/...) does not block a real
			// check-in; rewrite it in place so the day keeps a single row.
			existing.CheckIn = &now
			existing.CheckOut = nil
			existing.HoursWorked = nil
			existing.Status = StatusCheckIn
			if err := qtx.Update(ctx, existing); err != nil {
				return AttendanceResponse{}, err
			}
			if err := tx.Commit(); err != nil {
				return AttendanceResponse{}, err
			}
			return mapToResponse(*existing), nil
		}
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Date:       today,
		CheckIn:    &now,
		Status:     StatusCheckIn,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// The unique (employee_id, date) index closes the race between the
		// existence check and this insert.
		return AttendanceResponse{}, mapUniqueViolation(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if err := requireSelf(actor, employeeID); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := dateOnly(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
		}
		return AttendanceResponse{}, err
	}

	if row.Status == StatusAbsent {
		return AttendanceResponse{}, attendanceerrors.ErrMarkedAbsentToday
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
	}

	hours := roundHours(now.Sub(*row.CheckIn))
	row.CheckOut = &now
	row.HoursWorked = &hours
	row.Status = StatusCheckOut

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("employee_id", employeeID),
		zap.Float64("hours_worked", hours),
	)
	return mapToResponse(*row), nil
}

func (s *service) MarkAbsent(ctx context.Context, actor Actor, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if err := requireSelf(actor, employeeID); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := dateOnly(s.now())

	// First attendance action of the day wins: absence never overwrites an
	// existing record of any status.
	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyMarked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Date:       today,
		Status:     StatusAbsent,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapUniqueViolation(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("absence recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

func (s *service) Correct(ctx context.Context, actor Actor, req CorrectRequest) (AttendanceResponse, error) {
	if !domain.IsPrivileged(actor.Role) {
		return AttendanceResponse{}, attendanceerrors.ErrNotOwnRecord
	}
	if !IsValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	checkIn, err := parseOptionalTime(req.CheckIn)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkOut, err := parseOptionalTime(req.CheckOut)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimeRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	var row *Attendance
	isNew := false
	if req.AttendanceID != nil && *req.AttendanceID != "" {
		row, err = qtx.FindByID(ctx, *req.AttendanceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
			}
			return AttendanceResponse{}, err
		}
	} else {
		if req.EmployeeID == "" || req.Date == "" {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeAndDateRequired
		}
		if _, err := uuid.Parse(req.EmployeeID); err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
		}

		row, err = qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, err
			}
			row = &Attendance{
				ID:         uuid.New(),
				EmployeeID: uuid.MustParse(req.EmployeeID),
				Date:       date,
			}
			isNew = true
		}
	}

	// Managers may not rewrite their own day; only an admin can.
	if actor.Role == domain.RoleManager && actor.EmployeeID == row.EmployeeID.String() {
		return AttendanceResponse{}, attendanceerrors.ErrManagerOwnRecord
	}

	if req.Status == StatusAbsent {
		// Absence has no times, whatever the caller supplied.
		row.CheckIn = nil
		row.CheckOut = nil
		row.HoursWorked = nil
	} else {
		row.CheckIn = checkIn
		row.CheckOut = checkOut
		if checkIn != nil && checkOut != nil {
			hours := roundHours(checkOut.Sub(*checkIn))
			row.HoursWorked = &hours
		} else {
			row.HoursWorked = nil
		}
	}
	row.Status = req.Status

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	reason := req.Reason
	row.CorrectedBy = &actorUUID
	row.CorrectionReason = &reason
	row.CorrectionTime = &now

	if isNew {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		return AttendanceResponse{}, mapUniqueViolation(err)
	}

	if s.outbox != nil {
		if err := s.queueCorrectedEvent(ctx, tx, row, actor); err != nil {
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance corrected",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", row.EmployeeID.String()),
		zap.String("status", row.Status),
		zap.String("corrected_by", actor.UserID),
	)
	return mapToResponse(*row), nil
}

func (s *service) queueCorrectedEvent(ctx context.Context, tx *sql.Tx, row *Attendance, actor Actor) error {
	event := events.AttendanceCorrectedEvent{
		EventType:    events.AttendanceCorrectedEventType,
		AttendanceID: row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		Date:         row.Date.Format("2006-01-02"),
		Status:       row.Status,
		CorrectedBy:  actor.UserID,
	}
	if row.CorrectionReason != nil {
		event.Reason = *row.CorrectionReason
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance",
		AggregateID:   row.ID.String(),
		EventType:     events.AttendanceCorrectedEventType,
		Topic:         events.AttendanceCorrectedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// GetTodayStatus returns nil when the employee has no record yet; the
// handler renders that as the null-status sentinel.
func (s *service) GetTodayStatus(ctx context.Context, actor Actor, employeeID string) (*AttendanceResponse, error) {
	if actor.Role == domain.RoleEmployee {
		if err := requireSelfQuery(actor, employeeID); err != nil {
			return nil, err
		}
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, dateOnly(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]AttendanceResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.repo.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetByEmployee(ctx context.Context, actor Actor, employeeID string) ([]AttendanceResponse, error) {
	if actor.Role == domain.RoleEmployee {
		if err := requireSelfQuery(actor, employeeID); err != nil {
			return nil, err
		}
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetWorkSummary(ctx context.Context, actor Actor, employeeID string) (WorkSummaryResponse, error) {
	if actor.Role == domain.RoleEmployee {
		if err := requireSelfQuery(actor, employeeID); err != nil {
			return WorkSummaryResponse{}, err
		}
	}

	row, err := s.repo.WorkSummary(ctx, employeeID)
	if err != nil {
		return WorkSummaryResponse{}, err
	}

	return WorkSummaryResponse{
		EmployeeID:  employeeID,
		TotalHours:  row.TotalHours,
		WorkDays:    int(row.TotalHours / 8), // 8 hours = 1 work day
		DaysPresent: row.DaysPresent,
	}, nil
}

func requireSelfQuery(actor Actor, employeeID string) error {
	if actor.EmployeeID == "" {
		return attendanceerrors.ErrEmployeeRecordMissing
	}
	if actor.EmployeeID != employeeID {
		return attendanceerrors.ErrNotOwnQuery
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func parseOptionalTime(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimeFormat
	}
	u := t.UTC()
	return &u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyMarked
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrAlreadyMarked
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format("2006-01-02"),
		Status:     a.Status,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FirstName + " " + a.Employee.LastName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	resp.HoursWorked = a.HoursWorked
	if a.CorrectedBy != nil {
		v := a.CorrectedBy.String()
		resp.CorrectedBy = &v
	}
	resp.CorrectionReason = a.CorrectionReason
	if a.CorrectionTime != nil {
		v := a.CorrectionTime.Format(time.RFC3339)
		resp.CorrectionTime = &v
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
