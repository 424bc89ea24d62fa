// Package userrepo persists the access records of auth subjects.
package userrepo

import (
	"time"

	"restaurant/internal/core/domain/model/user"
)

// UserDTO is the users row, keyed by the auth provider's subject id. Super
// admins carry an empty tenant id.
type UserDTO struct {
	UID       string    `gorm:"primaryKey"`
	Email     string    `gorm:"not null;index"`
	Role      string    `gorm:"not null;index:idx_users_tenant_role,priority:2"`
	TenantID  string    `gorm:"not null;default:'';index:idx_users_tenant_role,priority:1"`
	Name      string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		UID:       u.UID(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		TenantID:  u.TenantID(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.NewUser(dto.UID, dto.Email, user.ParseRole(dto.Role), dto.TenantID, dto.Name, dto.CreatedAt)
}
