package orderrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/adapters/out/postgres/batch"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker collects the topics a write touched so the unit of work can
// notify subscribers once the transaction commits.
type changeTracker interface {
	TrackChange(topic ports.Topic, tenantID string)
}

func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.OrdersTopic, aggregate.TenantID())
	return nil
}

// Update writes every mutable column; identity, tenant and creation time are
// never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("table_number", "status", "items", "total_amount", "is_modified",
			"analytics_processed", "modified_at", "cancelled_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackChange(ports.OrdersTopic, aggregate.TenantID())
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), tenantID, id)
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE. Outside a transaction
// the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), tenantID, id)
}

func (r *GormOrderRepository) get(db *gorm.DB, tenantID string, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) DeleteCreatedBefore(
	ctx context.Context,
	tenantID string,
	cutoff time.Time,
	limit int,
) (int, error) {
	return r.deletePage(ctx, tenantID, limit, r.db.
		Model(&OrderDTO{}).
		Select("id").
		Where("tenant_id = ? AND created_at < ?", tenantID, cutoff).
		Order("created_at").
		Limit(limit))
}

func (r *GormOrderRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	return r.deletePage(ctx, tenantID, limit, r.db.
		Model(&OrderDTO{}).
		Select("id").
		Where("tenant_id = ?", tenantID).
		Limit(limit))
}

func (r *GormOrderRepository) deletePage(ctx context.Context, tenantID string, limit int, page *gorm.DB) (int, error) {
	if err := batch.CheckLimit(limit); err != nil {
		return 0, err
	}

	n, err := batch.Delete(ctx, r.db, &OrderDTO{}, page)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		r.tracker.TrackChange(ports.OrdersTopic, tenantID)
	}
	return n, nil
}
