package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Rejected vehicle batches carry per-line problems worth returning.
	var vde *service.VehicleDataError
	if errors.As(err, &vde) {
		return http.StatusUnprocessableEntity, vde.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSectionNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrOperationNotFound),
		errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrTaskAlreadyClosed):
		return http.StatusConflict, "task already closed"
	case errors.Is(err, domain.ErrObservationsRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
