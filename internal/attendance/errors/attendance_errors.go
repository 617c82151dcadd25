package attendanceerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

// Conflict and invalid-transition failures are 400s, matching the contract
// the attendance endpoints have always exposed.
var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out today",
		http.StatusBadRequest,
	)
	ErrMarkedAbsentToday = apperror.New(
		apperror.CodeInvalidState,
		"you are marked absent today",
		http.StatusBadRequest,
	)
	ErrCheckInRequired = apperror.New(
		apperror.CodeInvalidState,
		"check in first before check out",
		http.StatusBadRequest,
	)
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance already marked for today",
		http.StatusBadRequest,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"you can only record attendance for yourself",
		http.StatusForbidden,
	)
	ErrNotOwnQuery = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own attendance",
		http.StatusForbidden,
	)
	ErrManagerOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"managers cannot correct their own attendance record",
		http.StatusForbidden,
	)
	ErrEmployeeRecordMissing = apperror.New(
		apperror.CodeNotFound,
		"no employee record is linked to this user",
		http.StatusNotFound,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status value",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC 3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"check_out must be after check_in",
		http.StatusBadRequest,
	)
	ErrEmployeeAndDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id and date are required when no attendance_id is given",
		http.StatusBadRequest,
	)
)
