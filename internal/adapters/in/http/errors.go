package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/generated/servers"
	"logistics/internal/jobs"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrWarehouseIsNotOperational),
		errors.Is(err, jobs.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, jobs.ErrSchedulerStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error message for client errors and a fixed message
// for anything unexpected.
func respondError(ctx echo.Context, err error, fallback string) error {
	status := statusFor(err)
	message := fallback
	if status != http.StatusInternalServerError {
		message = fallback + ": " + err.Error()
	} else {
		ctx.Logger().Errorf("%s: %v", fallback, err)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
