package userrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM. Access
// records have no change topic.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormUserRepository) Get(ctx context.Context, uid string) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", uid)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormUserRepository) ListByTenantAndRole(ctx context.Context, tenantID string, role user.Role) ([]*user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND role = ?", tenantID, role.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *GormUserRepository) Delete(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Delete(&UserDTO{}, "uid = ?", uid).Error
}

// DeleteByTenant refuses an empty tenant id, which would match super admins.
func (r *GormUserRepository) DeleteByTenant(ctx context.Context, tenantID string) (int, error) {
	if tenantID == "" {
		return 0, errs.NewValueIsRequiredError("tenant_id")
	}
	result := r.db.WithContext(ctx).Delete(&UserDTO{}, "tenant_id = ?", tenantID)
	return int(result.RowsAffected), result.Error
}
