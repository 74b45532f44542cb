package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Timestamp int64                `json:"timestamp"`
	Status    int                  `json:"status"`
	Error     string               `json:"error"`
	Message   string               `json:"message"`
	Path      string               `json:"path"`
	Errors    []service.FieldError `json:"errors,omitempty"`
}

// ErrorHandler renders errors as ErrorBody. Unknown errors become 500 without leaking details.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	body := ErrorBody{
		Timestamp: time.Now().UnixMilli(),
		Status:    http.StatusInternalServerError,
		Message:   "internal error",
		Path:      c.Request().URL.Path,
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body.Status = he.Code
		switch m := he.Message.(type) {
		case *service.ValidationError:
			body.Message = "Validation error"
			body.Errors = m.Fields
		case string:
			body.Message = m
		case error:
			body.Message = m.Error()
		default:
			body.Message = fmt.Sprint(m)
		}
	}
	body.Error = http.StatusText(body.Status)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(body.Status)
		return
	}
	_ = c.JSON(body.Status, body)
}

// fail logs err under op and converts service sentinels to HTTP errors.
func fail(l *slog.Logger, op string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(op, "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, verr)
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "reason", "invalid request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(op, "status", 401, "reason", "unauthorized", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccessDenied):
		l.Warn(op, "status", 403, "reason", "access denied", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, trimSentinel(err, service.ErrNotFound))
	case errors.Is(err, service.ErrIntegrity):
		l.Warn(op, "status", 409, "reason", "integrity violation", "error", err)
		return echo.NewHTTPError(http.StatusConflict, trimSentinel(err, service.ErrIntegrity))
	}
	l.Error(op, "status", 500, "reason", "unexpected error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// trimSentinel drops the "<sentinel>: " prefix added by wrapping.
func trimSentinel(err, sentinel error) string {
	msg, prefix := err.Error(), sentinel.Error()+": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
