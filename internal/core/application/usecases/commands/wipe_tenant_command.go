package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrWipeTenantCommandIsNotConstructed = errors.New(
	"WipeTenantCommand must be created via NewWipeTenantCommand constructor",
)

// WipeStep names a stage of a tenant wipe, in execution order.
type WipeStep string

const (
	WipeUsers      WipeStep = "users"
	WipeProducts   WipeStep = "products"
	WipeCategories WipeStep = "categories"
	WipeOrders     WipeStep = "orders"
	WipeAggregates WipeStep = "daily_aggregates"
	WipeTenant     WipeStep = "tenant"
)

// WipeProgress is called after every deleted page. Deleted is the running
// total of the step.
type WipeProgress func(step WipeStep, deleted int)

// WipeTenantCommand deletes a tenant and everything it owns.
type WipeTenantCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	progress WipeProgress

	guard guard.ConstructorGuard
}

// NewWipeTenantCommand accepts a nil progress callback.
func NewWipeTenantCommand(tenantID string, progress WipeProgress) (WipeTenantCommand, error) {
	if progress == nil {
		progress = func(WipeStep, int) {}
	}
	cmd := WipeTenantCommand{progress: progress, guard: guard.NewConstructorGuard()}
	if err := setTenant(&cmd.tenantID, tenantID); err != nil {
		return WipeTenantCommand{}, err
	}
	return cmd, nil
}

func (c WipeTenantCommand) Validate() error {
	return c.guard.Validate(ErrWipeTenantCommandIsNotConstructed)
}

func (c WipeTenantCommand) TenantID() string       { return c.tenantID }
func (c WipeTenantCommand) Progress() WipeProgress { return c.progress }
