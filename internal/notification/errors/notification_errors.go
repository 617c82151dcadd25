package notificationerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotOwnNotification = apperror.New(
		apperror.CodeForbidden,
		"you can only access your own notifications",
		http.StatusForbidden,
	)
)
