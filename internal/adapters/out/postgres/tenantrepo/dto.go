// Package tenantrepo persists tenants. The tenant id is the slug chosen at
// provisioning time.
package tenantrepo

import (
	"time"

	"restaurant/internal/core/domain/model/tenant"

	"github.com/shopspring/decimal"
)

// TenantDTO is the tenants row. IsOpen is nullable: rows written before the
// operating flag existed read as open.
type TenantDTO struct {
	ID                string          `gorm:"primaryKey"`
	Name              string          `gorm:"not null;index"`
	Active            bool            `gorm:"not null"`
	IsOpen            *bool
	RetentionDays     int             `gorm:"not null;default:30"`
	ServiceFeePercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
}

func (TenantDTO) TableName() string {
	return "tenants"
}

func fromDomain(t *tenant.Tenant) TenantDTO {
	return TenantDTO{
		ID:                t.ID(),
		Name:              t.Name(),
		Active:            t.Active(),
		IsOpen:            t.IsOpen(),
		RetentionDays:     t.RetentionDays(),
		ServiceFeePercent: t.ServiceFeePercent(),
		CreatedAt:         t.CreatedAt(),
	}
}

func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	return tenant.RestoreTenant(
		dto.ID,
		dto.Name,
		dto.Active,
		dto.IsOpen,
		dto.RetentionDays,
		dto.ServiceFeePercent,
		dto.CreatedAt,
	)
}
