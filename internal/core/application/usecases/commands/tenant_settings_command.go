package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrTenantSettingsCommandIsNotConstructed = errors.New(
	"TenantSettingsCommand must be created via one of its New*Command constructors",
)

// TenantSettingsCommand changes one setting of a tenant. Each constructor
// builds the change for one setting.
type TenantSettingsCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	setting  string
	apply    func(t *tenant.Tenant) error

	guard guard.ConstructorGuard
}

// NewSetTenantActiveCommand suspends or reactivates the tenant.
func NewSetTenantActiveCommand(tenantID string, active bool) (TenantSettingsCommand, error) {
	return newTenantSettingsCommand(tenantID, "active", func(t *tenant.Tenant) error {
		t.SetActive(active)
		return nil
	})
}

// NewSetTenantOpenCommand opens or closes the tenant for employees.
func NewSetTenantOpenCommand(tenantID string, open bool) (TenantSettingsCommand, error) {
	return newTenantSettingsCommand(tenantID, "is_open", func(t *tenant.Tenant) error {
		t.SetOpen(open)
		return nil
	})
}

func NewUpdateRetentionPolicyCommand(tenantID string, days int) (TenantSettingsCommand, error) {
	return newTenantSettingsCommand(tenantID, "retention_days", func(t *tenant.Tenant) error {
		return t.SetRetentionDays(days)
	})
}

func NewUpdateServiceFeeCommand(tenantID string, percent decimal.Decimal) (TenantSettingsCommand, error) {
	return newTenantSettingsCommand(tenantID, "service_fee_percent", func(t *tenant.Tenant) error {
		return t.SetServiceFeePercent(percent)
	})
}

func newTenantSettingsCommand(tenantID, setting string, apply func(t *tenant.Tenant) error) (TenantSettingsCommand, error) {
	cmd := TenantSettingsCommand{setting: setting, apply: apply, guard: guard.NewConstructorGuard()}
	if err := setTenant(&cmd.tenantID, tenantID); err != nil {
		return TenantSettingsCommand{}, err
	}
	return cmd, nil
}

func (c TenantSettingsCommand) Validate() error {
	return c.guard.Validate(ErrTenantSettingsCommandIsNotConstructed)
}

func (c TenantSettingsCommand) TenantID() string { return c.tenantID }

// Setting names the changed field.
func (c TenantSettingsCommand) Setting() string { return c.setting }
