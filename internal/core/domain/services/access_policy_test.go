package services_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_Evaluate(t *testing.T) {
	policy := services.NewAccessPolicy()

	testCases := []struct {
		role   user.Role
		page   services.Page
		effect services.Effect
		target string
	}{
		{user.SuperAdmin, services.MasterPage, services.Allow, ""},
		{user.SuperAdmin, services.AdminPage, services.Allow, ""},
		{user.SuperAdmin, services.OperationalPage, services.Allow, ""},
		{user.Owner, services.MasterPage, services.Deny, services.LoginTarget},
		{user.Owner, services.AdminPage, services.Allow, ""},
		{user.Owner, services.OperationalPage, services.Allow, ""},
		{user.Employee, services.MasterPage, services.Deny, services.LoginTarget},
		{user.Employee, services.AdminPage, services.Redirect, services.WaiterTarget},
		{user.Employee, services.OperationalPage, services.Allow, ""},
		{user.Guest, services.AdminPage, services.Deny, services.LoginTarget},
		{user.Guest, services.OperationalPage, services.Deny, services.LoginTarget},
		{user.Guest, services.LoginPage, services.Allow, ""},
		{user.Role("intruder"), services.LoginPage, services.Deny, services.LoginTarget},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role)+"@"+string(tc.page), func(t *testing.T) {
			d := policy.Evaluate(tc.role, tc.page)

			assert.Equal(t, tc.effect, d.Effect, d.Effect.String())
			assert.Equal(t, tc.target, d.Target)
		})
	}
}

func TestAccessPolicy_Authorize(t *testing.T) {
	policy := services.NewAccessPolicy()

	require.NoError(t, policy.Authorize(user.Owner, services.AdminPage))

	err := policy.Authorize(user.Employee, services.AdminPage)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
	var denied *errs.AccessDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "garcom", denied.Redirect)
	assert.Equal(t, "employee", denied.Role)
}

func TestParsePage(t *testing.T) {
	p, err := services.ParsePage("operational")
	require.NoError(t, err)
	assert.True(t, p.BindsTenantContext())

	assert.False(t, services.MasterPage.BindsTenantContext())
	assert.False(t, services.SetupPage.BindsTenantContext())

	_, err = services.ParsePage("kitchen")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestEvaluateTenantAccess(t *testing.T) {
	open, closed := true, false
	restore := func(active bool, isOpen *bool) *tenant.Tenant {
		tn, err := tenant.RestoreTenant("t1", "Nome", active, isOpen, 7, decimal.Zero, time.Now())
		require.NoError(t, err)
		return tn
	}

	testCases := []struct {
		name   string
		tenant *tenant.Tenant
		role   user.Role
		want   services.AccessState
	}{
		{"missing tenant is open", nil, user.Employee, services.Open},
		{"inactive blocks owner", restore(false, &open), user.Owner, services.Suspended},
		{"inactive blocks super admin", restore(false, nil), user.SuperAdmin, services.Suspended},
		{"closed blocks employee", restore(true, &closed), user.Employee, services.OperationClosed},
		{"closed lets owner in", restore(true, &closed), user.Owner, services.Open},
		{"closed lets super admin in", restore(true, &closed), user.SuperAdmin, services.Open},
		{"missing open flag is open", restore(true, nil), user.Employee, services.Open},
		{"suspension wins over closure", restore(false, &closed), user.Employee, services.Suspended},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.EvaluateTenantAccess(tc.tenant, tc.role)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want != services.Open, got.Blocking())
		})
	}
}
