package ports

import (
	"context"

	"restaurant/internal/core/domain/model/user"
)

// UserRepository stores the access records linking auth subjects to roles.
type UserRepository interface {
	// Add persists a new record keyed by the auth subject.
	Add(ctx context.Context, u *user.User) error

	// Get returns the record or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, uid string) (*user.User, error)

	// ListByTenantAndRole returns the tenant's users holding role, oldest first.
	ListByTenantAndRole(ctx context.Context, tenantID string, role user.Role) ([]*user.User, error)

	// Delete removes the record, revoking access. Deleting a missing record is
	// not an error.
	Delete(ctx context.Context, uid string) error

	// DeleteByTenant removes every record of tenantID.
	DeleteByTenant(ctx context.Context, tenantID string) (int, error)
}
