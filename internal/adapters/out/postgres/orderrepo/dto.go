// Package orderrepo persists order aggregates. Order lines are stored as a
// JSON document on the order row.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Listings filter by tenant and status and the
// sweep by tenant and creation time, hence the two composite indexes.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID           string          `gorm:"not null;index:idx_orders_tenant_status,priority:1;index:idx_orders_tenant_created,priority:1"`
	TableNumber        int             `gorm:"not null"`
	Status             string          `gorm:"not null;index:idx_orders_tenant_status,priority:2"`
	Items              ItemsDTO        `gorm:"type:jsonb;not null"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_orders_tenant_created,priority:2"`
	IsModified         bool            `gorm:"not null;default:false"`
	AnalyticsProcessed bool            `gorm:"not null;default:false"`
	ModifiedAt         *time.Time
	CancelledAt        *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line in the items document.
type ItemDTO struct {
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Qty      int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// ItemsDTO maps the order lines to a jsonb column.
type ItemsDTO []ItemDTO

func (i ItemsDTO) Value() (driver.Value, error) {
	if i == nil {
		i = ItemsDTO{}
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *ItemsDTO) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*i = ItemsDTO{}
		return nil
	default:
		return fmt.Errorf("items: unsupported column type %T", src)
	}
	return json.Unmarshal(raw, i)
}

// FromItems converts domain order lines to their stored form.
func FromItems(items []order.Item) ItemsDTO {
	dtos := make(ItemsDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			Name:     item.Name(),
			Category: item.Category(),
			Qty:      item.Qty(),
			Price:    item.Price(),
		})
	}
	return dtos
}

// ToItems rebuilds validated domain order lines.
func (i ItemsDTO) ToItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(i))
	for _, dto := range i {
		item, err := order.NewItem(dto.Name, dto.Category, dto.Qty, dto.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		TenantID:           o.TenantID(),
		TableNumber:        o.TableNumber().Int(),
		Status:             o.Status().String(),
		Items:              FromItems(o.Items()),
		TotalAmount:        o.TotalAmount(),
		CreatedAt:          o.CreatedAt(),
		IsModified:         o.IsModified(),
		AnalyticsProcessed: o.AnalyticsProcessed(),
		ModifiedAt:         o.ModifiedAt(),
		CancelledAt:        o.CancelledAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items, err := dto.Items.ToItems()
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.TenantID,
		order.TableNumber(dto.TableNumber),
		order.Status(dto.Status),
		items,
		dto.TotalAmount,
		dto.CreatedAt,
		dto.IsModified,
		dto.AnalyticsProcessed,
		dto.ModifiedAt,
		dto.CancelledAt,
	)
}
