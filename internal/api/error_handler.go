package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamehall/account-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Code: "validation_error"}
	}

	// Known domain errors → deterministic codes. InvalidCredentials covers
	// both unknown identifier and wrong password with one message.
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict, errorResponse{Error: "phone or email already registered", Code: "duplicate_identity"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials", Code: "invalid_credentials"}
	case errors.Is(err, domain.ErrPendingApproval):
		return http.StatusForbidden, errorResponse{Error: "account pending approval", Code: "pending_approval"}
	case errors.Is(err, domain.ErrRejected):
		return http.StatusForbidden, errorResponse{Error: "account rejected", Code: "rejected"}
	case errors.Is(err, domain.ErrDeactivated):
		return http.StatusForbidden, errorResponse{Error: "account deactivated", Code: "deactivated"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid or expired token", Code: "unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "insufficient privilege", Code: "forbidden"}
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, errorResponse{Error: "account not found", Code: "not_found"}
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, errorResponse{Error: "admin not found", Code: "not_found"}
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, errorResponse{Error: "invalid amount", Code: "invalid_amount"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
