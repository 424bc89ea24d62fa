// Package catalogrepo persists menu categories and products.
package catalogrepo

import (
	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the categories row. Names are unique within a tenant.
type CategoryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID string    `gorm:"not null;uniqueIndex:idx_categories_tenant_name,priority:1"`
	Name     string    `gorm:"not null;uniqueIndex:idx_categories_tenant_name,priority:2"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

// ProductDTO is the products row. Category holds the category name as text.
type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  string          `gorm:"not null;index"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category  string          `gorm:"not null;default:''"`
	Available bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func categoryFromDomain(c *catalog.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID().Bytes(), TenantID: c.TenantID(), Name: c.Name()}
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID().Bytes(),
		TenantID:  p.TenantID(),
		Name:      p.Name(),
		Price:     p.Price(),
		Category:  p.Category(),
		Available: p.Available(),
	}
}

// ToCategory rebuilds the domain category of a row.
func (dto CategoryDTO) ToCategory() (*catalog.Category, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewCategory(id, dto.TenantID, dto.Name)
}
