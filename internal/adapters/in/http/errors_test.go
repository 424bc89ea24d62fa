package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("qty"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("days", 0, 1, 365), http.StatusBadRequest},
		{"auth", errs.NewAuthError(ports.AuthWrongPassword, ""), http.StatusUnauthorized},
		{"denied", errs.NewAccessDeniedError("employee", "admin", "garcom"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"locked", &LockedError{TenantID: "t1", State: services.Suspended}, http.StatusLocked},
		{"wrapped", fmt.Errorf("handle: %w", errs.NewObjectNotFoundError("order", "x")), http.StatusNotFound},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	auth := ErrorBody(errs.NewAuthError(ports.AuthWrongPassword, "Senha incorreta."))
	assert.Equal(t, ports.AuthWrongPassword, auth.AuthCode)
	assert.Equal(t, "Senha incorreta.", auth.Message)

	denied := ErrorBody(errs.NewAccessDeniedError("employee", "admin", "garcom"))
	assert.Equal(t, "garcom", denied.Redirect)

	locked := ErrorBody(&LockedError{TenantID: "t1", State: services.OperationClosed})
	assert.Equal(t, http.StatusLocked, locked.Code)
	assert.Equal(t, "operation_closed", locked.State)

	internal := ErrorBody(errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "Internal Server Error", internal.Message)
}
