package catalogrepo

import (
	"context"

	"restaurant/internal/adapters/out/postgres/batch"
	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

type changeTracker interface {
	TrackChange(topic ports.Topic, tenantID string)
}

// GormCategoryRepository implements ports.CategoryRepository using GORM.
type GormCategoryRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

func NewGormCategoryRepository(db *gorm.DB, tracker changeTracker) *GormCategoryRepository {
	return &GormCategoryRepository{db: db, tracker: tracker}
}

func (r *GormCategoryRepository) Add(ctx context.Context, c *catalog.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.CatalogTopic, c.TenantID())
	return nil
}

func (r *GormCategoryRepository) ExistsByName(ctx context.Context, tenantID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CategoryDTO{}).
		Where("tenant_id = ? AND name = ?", tenantID, catalog.NormalizeCategoryName(name)).
		Count(&count).Error
	return count > 0, err
}

func (r *GormCategoryRepository) Delete(ctx context.Context, tenantID string, id kernel.UUID) error {
	return deleteOne(ctx, r.db, r.tracker, &CategoryDTO{}, tenantID, id)
}

func (r *GormCategoryRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	return deleteByTenant(ctx, r.db, r.tracker, &CategoryDTO{}, tenantID, limit)
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

func NewGormProductRepository(db *gorm.DB, tracker changeTracker) *GormProductRepository {
	return &GormProductRepository{db: db, tracker: tracker}
}

func (r *GormProductRepository) Add(ctx context.Context, p *catalog.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.CatalogTopic, p.TenantID())
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("name", "price", "category", "available").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", p.ID().String())
	}

	r.tracker.TrackChange(ports.CatalogTopic, p.TenantID())
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, tenantID string, id kernel.UUID) error {
	return deleteOne(ctx, r.db, r.tracker, &ProductDTO{}, tenantID, id)
}

func (r *GormProductRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	return deleteByTenant(ctx, r.db, r.tracker, &ProductDTO{}, tenantID, limit)
}

func deleteOne(ctx context.Context, db *gorm.DB, tracker changeTracker, model any, tenantID string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID).Delete(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		tracker.TrackChange(ports.CatalogTopic, tenantID)
	}
	return nil
}

func deleteByTenant(ctx context.Context, db *gorm.DB, tracker changeTracker, model any, tenantID string, limit int) (int, error) {
	if err := batch.CheckLimit(limit); err != nil {
		return 0, err
	}

	n, err := batch.Delete(ctx, db, model, db.Model(model).Select("id").Where("tenant_id = ?", tenantID).Limit(limit))
	if err != nil {
		return 0, err
	}

	if n > 0 {
		tracker.TrackChange(ports.CatalogTopic, tenantID)
	}
	return n, nil
}
