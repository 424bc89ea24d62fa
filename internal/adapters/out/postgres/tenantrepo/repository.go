package tenantrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTenantRepository implements ports.TenantRepository using GORM.
type GormTenantRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

type changeTracker interface {
	TrackChange(topic ports.Topic, tenantID string)
}

func NewGormTenantRepository(db *gorm.DB, tracker changeTracker) *GormTenantRepository {
	return &GormTenantRepository{db: db, tracker: tracker}
}

func (r *GormTenantRepository) Add(ctx context.Context, aggregate *tenant.Tenant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.TenantsTopic, aggregate.ID())
	return nil
}

func (r *GormTenantRepository) Update(ctx context.Context, aggregate *tenant.Tenant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TenantDTO{}).
		Where("id = ?", dto.ID).
		Select("active", "is_open", "retention_days", "service_fee_percent").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tenant", dto.ID)
	}

	r.tracker.TrackChange(ports.TenantsTopic, aggregate.ID())
	return nil
}

func (r *GormTenantRepository) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var dtos []TenantDTO
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tenants := make([]*tenant.Tenant, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}

	return tenants, nil
}

// Delete is idempotent; a wipe that already removed the record succeeds.
func (r *GormTenantRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&TenantDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackChange(ports.TenantsTopic, id)
	}
	return nil
}
