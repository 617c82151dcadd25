package salary

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"go-ems/internal/domain"
	salaryerrors "go-ems/internal/salary/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, actor Actor) ([]SalaryResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	MarkPaid(ctx context.Context, id string) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func computeNet(base, bonus, deductions float64) float64 {
	return math.Round((base+bonus-deductions)*100) / 100
}

func validateAmounts(base, bonus, deductions float64) error {
	if base < 0 || bonus < 0 || deductions < 0 {
		return salaryerrors.ErrNegativeAmount
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	if err := validateAmounts(req.BaseSalary, req.Bonus, req.Deductions); err != nil {
		return SalaryResponse{}, err
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidPayDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &Salary{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		BaseSalary: req.BaseSalary,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		Net:        computeNet(req.BaseSalary, req.Bonus, req.Deductions),
		PayDate:    payDate,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return SalaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("salary record created",
		zap.String("salary_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("pay_date", req.PayDate),
	)
	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, actor Actor) ([]SalaryResponse, error) {
	if !domain.IsPrivileged(actor.Role) {
		if actor.EmployeeID == "" {
			return nil, salaryerrors.ErrEmployeeRecordMissing
		}
		salaries, err := s.repo.FindAllByEmployee(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(salaries), nil
	}

	salaries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	if !domain.IsPrivileged(actor.Role) && actor.EmployeeID != record.EmployeeID.String() {
		return SalaryResponse{}, salaryerrors.ErrNotOwnSalary
	}
	return mapToResponse(*record), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	if err := validateAmounts(req.BaseSalary, req.Bonus, req.Deductions); err != nil {
		return SalaryResponse{}, err
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidPayDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	record.BaseSalary = req.BaseSalary
	record.Bonus = req.Bonus
	record.Deductions = req.Deductions
	record.Net = computeNet(req.BaseSalary, req.Bonus, req.Deductions)
	record.PayDate = payDate
	record.Status = req.Status
	if req.Status == StatusPaid && record.PaidAt == nil {
		now := time.Now().UTC()
		record.PaidAt = &now
	}
	if req.Status == StatusPending {
		record.PaidAt = nil
	}

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("salary record updated", zap.String("salary_id", id))
	return mapToResponse(*record), nil
}

func (s *service) MarkPaid(ctx context.Context, id string) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	if record.Status == StatusPaid {
		return SalaryResponse{}, salaryerrors.ErrAlreadyPaid
	}

	now := time.Now().UTC()
	record.Status = StatusPaid
	record.PaidAt = &now

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("salary record marked paid", zap.String("salary_id", id))
	return mapToResponse(*record), nil
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
			return salaryerrors.ErrSalaryNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("salary record deleted", zap.String("salary_id", id))
	return nil
}

func mapToResponse(record Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		BaseSalary: record.BaseSalary,
		Bonus:      record.Bonus,
		Deductions: record.Deductions,
		Net:        record.Net,
		PayDate:    record.PayDate.Format("2006-01-02"),
		Status:     record.Status,
	}
	if record.Employee != nil {
		resp.EmployeeName = record.Employee.FirstName + " " + record.Employee.LastName
	}
	if record.PaidAt != nil {
		v := record.PaidAt.UTC().Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, record := range salaries {
		resp[i] = mapToResponse(record)
	}
	return resp
}
