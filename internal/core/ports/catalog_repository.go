package ports

import (
	"context"

	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
)

// CategoryRepository stores menu categories.
type CategoryRepository interface {
	Add(ctx context.Context, c *catalog.Category) error
	// ExistsByName compares against the normalised stored name.
	ExistsByName(ctx context.Context, tenantID, name string) (bool, error)
	Delete(ctx context.Context, tenantID string, id kernel.UUID) error
	DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error)
}

// ProductRepository stores menu products.
type ProductRepository interface {
	Add(ctx context.Context, p *catalog.Product) error
	// Update returns an *errs.ObjectNotFoundError when the product is not in
	// the tenant's catalog.
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, tenantID string, id kernel.UUID) error
	DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error)
}
