package taskerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the assignee or the task creator can update this task",
		http.StatusForbidden,
	)
	ErrTimerNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the assignee can run the task timer",
		http.StatusForbidden,
	)
	ErrTimerAlreadyRunning = apperror.New(
		apperror.CodeConflict,
		"task timer is already running",
		http.StatusConflict,
	)
	ErrTimerNotRunning = apperror.New(
		apperror.CodeInvalidState,
		"task timer is not running",
		http.StatusBadRequest,
	)
	ErrEmployeeRecordMissing = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this user",
		http.StatusNotFound,
	)
	ErrCompletedImmutable = apperror.New(
		apperror.CodeInvalidState,
		"completed tasks cannot change status",
		http.StatusBadRequest,
	)
)
