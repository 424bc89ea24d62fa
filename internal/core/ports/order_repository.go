package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every lookup is scoped by tenant; an order stored under another tenant is
// reported as not found.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable fields of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order of tenantID by id.
	Get(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Concurrent callers for the same order are serialised.
	GetForUpdate(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error)

	// DeleteCreatedBefore deletes at most limit orders of tenantID created
	// strictly before cutoff and returns how many were deleted.
	DeleteCreatedBefore(ctx context.Context, tenantID string, cutoff time.Time, limit int) (int, error)

	// DeleteByTenant deletes at most limit orders of tenantID.
	DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error)
}
