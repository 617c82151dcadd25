package performance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-ems/internal/domain"
	performanceerrors "go-ems/internal/performance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateEvaluationRequest) (EvaluationResponse, error)
	GetAll(ctx context.Context, actor Actor) ([]EvaluationResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (EvaluationResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateEvaluationRequest) (EvaluationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateEvaluationRequest) (EvaluationResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EvaluationResponse{}, performanceerrors.ErrInvalidEmployeeID
	}
	if actor.EmployeeID == req.EmployeeID {
		return EvaluationResponse{}, performanceerrors.ErrSelfEvaluation
	}
	reviewerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return EvaluationResponse{}, performanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	evaluation := &Evaluation{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		ReviewerID: reviewerID,
		Period:     req.Period,
		Score:      req.Score,
		Feedback:   req.Feedback,
	}

	if err := qtx.Create(ctx, evaluation); err != nil {
		return EvaluationResponse{}, mapUniqueViolation(err)
	}
	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	s.logger.Info("evaluation created",
		zap.String("evaluation_id", evaluation.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
		zap.Int("score", req.Score),
	)
	return mapToResponse(*evaluation), nil
}

func (s *service) GetAll(ctx context.Context, actor Actor) ([]EvaluationResponse, error) {
	if !domain.IsPrivileged(actor.Role) {
		if actor.EmployeeID == "" {
			return nil, performanceerrors.ErrEmployeeRecordMissing
		}
		evaluations, err := s.repo.FindAllByEmployee(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(evaluations), nil
	}

	evaluations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(evaluations), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (EvaluationResponse, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, performanceerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}
	if !domain.IsPrivileged(actor.Role) && actor.EmployeeID != evaluation.EmployeeID.String() {
		return EvaluationResponse{}, performanceerrors.ErrNotOwnEvaluation
	}
	return mapToResponse(*evaluation), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateEvaluationRequest) (EvaluationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	evaluation, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, performanceerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}
	if actor.EmployeeID != "" && actor.EmployeeID == evaluation.EmployeeID.String() {
		return EvaluationResponse{}, performanceerrors.ErrSelfEvaluation
	}

	evaluation.Score = req.Score
	evaluation.Feedback = req.Feedback

	if err := qtx.Update(ctx, evaluation); err != nil {
		return EvaluationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	s.logger.Info("evaluation updated", zap.String("evaluation_id", id), zap.Int("score", req.Score))
	return mapToResponse(*evaluation), nil
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
			return performanceerrors.ErrEvaluationNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return performanceerrors.ErrDuplicatePeriod
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return performanceerrors.ErrDuplicatePeriod
	}
	return err
}

func mapToResponse(e Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		ReviewerID: e.ReviewerID.String(),
		Period:     e.Period,
		Score:      e.Score,
		Feedback:   e.Feedback,
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FirstName + " " + e.Employee.LastName
	}
	return resp
}

func mapToListResponse(evaluations []Evaluation) []EvaluationResponse {
	resp := make([]EvaluationResponse, len(evaluations))
	for i, e := range evaluations {
		resp[i] = mapToResponse(e)
	}
	return resp
}
