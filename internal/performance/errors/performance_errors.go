package performanceerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance evaluation not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrSelfEvaluation = apperror.New(
		apperror.CodeForbidden,
		"reviewers cannot evaluate themselves",
		http.StatusForbidden,
	)
	ErrNotOwnEvaluation = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own evaluations",
		http.StatusForbidden,
	)
	ErrEmployeeRecordMissing = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this user",
		http.StatusNotFound,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"an evaluation for this employee and period already exists",
		http.StatusConflict,
	)
)
