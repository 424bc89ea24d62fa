package ports

import (
	"context"

	"restaurant/internal/core/domain/model/tenant"
)

// TenantRepository defines the persistence contract for tenants.
type TenantRepository interface {
	// Add persists a new tenant; the slug must not be taken.
	Add(ctx context.Context, aggregate *tenant.Tenant) error

	// Update persists status, operating flag, retention and service fee.
	Update(ctx context.Context, aggregate *tenant.Tenant) error

	// Get returns the tenant or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*tenant.Tenant, error)

	// List returns every tenant sorted by name.
	List(ctx context.Context) ([]*tenant.Tenant, error)

	// Delete removes the tenant record only.
	Delete(ctx context.Context, id string) error
}
