package http

import (
	"errors"
	"net/http"

	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	AuthCode string `json:"auth_code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	State    string `json:"state,omitempty"`
}

// LockedError reports that the access gate blocks the session.
type LockedError struct {
	TenantID string
	State    services.AccessState
}

func (e *LockedError) Error() string {
	return "tenant " + e.TenantID + " is " + string(e.State)
}

// StatusOf maps an application error to its HTTP status.
func StatusOf(err error) int {
	var locked *LockedError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &locked):
		return http.StatusLocked
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody renders err. Internal errors are not echoed to the client.
func ErrorBody(err error) Error {
	status := StatusOf(err)
	body := Error{Code: status, Message: err.Error()}

	var authErr *errs.AuthError
	var denied *errs.AccessDeniedError
	var locked *LockedError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &authErr):
		body.AuthCode = authErr.Code
		if authErr.Message != "" {
			body.Message = authErr.Message
		}
	case errors.As(err, &denied):
		body.Redirect = denied.Redirect
	case errors.As(err, &locked):
		body.State = string(locked.State)
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	if status == http.StatusInternalServerError {
		body.Message = http.StatusText(status)
	}
	return body
}

// ErrorHandler replaces echo's default error handler.
func (s *Server) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	body := ErrorBody(err)
	logger := s.logger.With().
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Int("status", body.Code).
		Logger()
	if body.Code >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Msg("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(body.Code)
		return
	}
	_ = c.JSON(body.Code, body)
}
