package ports

import (
	"context"

	"restaurant/internal/core/domain/model/analytics"
	"restaurant/internal/core/domain/model/kernel"
)

// AggregateRepository stores daily aggregates. Aggregates only ever change
// through ApplyDelta.
type AggregateRepository interface {
	// ApplyDelta creates the day's aggregate if needed and increments revenue,
	// order count and every counter server-side.
	ApplyDelta(ctx context.Context, delta analytics.Delta) error

	// DeleteDatedBefore deletes at most limit aggregates of tenantID dated
	// strictly before cutoff, counters included.
	DeleteDatedBefore(ctx context.Context, tenantID string, cutoff kernel.Date, limit int) (int, error)

	// DeleteByTenant deletes at most limit aggregates of tenantID.
	DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error)
}
