package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrSweepTenantCommandIsNotConstructed = errors.New(
	"SweepTenantCommand must be created via NewSweepTenantCommand constructor",
)

// SweepTenantCommand removes a tenant's expired operational data.
type SweepTenantCommand struct { //nolint:recvcheck //using for validation
	tenantID string

	guard guard.ConstructorGuard
}

func NewSweepTenantCommand(tenantID string) (SweepTenantCommand, error) {
	cmd := SweepTenantCommand{guard: guard.NewConstructorGuard()}
	if err := setTenant(&cmd.tenantID, tenantID); err != nil {
		return SweepTenantCommand{}, err
	}
	return cmd, nil
}

func (c SweepTenantCommand) Validate() error {
	return c.guard.Validate(ErrSweepTenantCommandIsNotConstructed)
}

func (c SweepTenantCommand) TenantID() string { return c.tenantID }
