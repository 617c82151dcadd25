package salaryerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrNotOwnSalary = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own salary records",
		http.StatusForbidden,
	)
	ErrEmployeeRecordMissing = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this user",
		http.StatusNotFound,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"salary record is already marked paid",
		http.StatusBadRequest,
	)
)
