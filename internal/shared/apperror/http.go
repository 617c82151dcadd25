package apperror

import (
	"errors"
	"net/http"
	"os"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP translates any error into a status/code/message triple for the
// response envelope. Unknown errors become 500; their message is surfaced
// only outside production.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	msg := ErrInternal.Message
	if err != nil && os.Getenv("APP_ENV") != "production" {
		msg = err.Error()
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: msg,
	}
}
