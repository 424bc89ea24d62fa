package queries

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListTenantsQueryIsNotConstructed = errors.New(
		"ListTenantsQuery must be created via NewListTenantsQuery constructor",
	)
	ErrGetTenantConfigQueryIsNotConstructed = errors.New(
		"GetTenantConfigQuery must be created via NewGetTenantConfigQuery constructor",
	)
	ErrCountTenantDataQueryIsNotConstructed = errors.New(
		"CountTenantDataQuery must be created via NewCountTenantDataQuery constructor",
	)
)

// ListTenantsQuery lists every tenant sorted by name. Only the platform
// console uses it.
type ListTenantsQuery struct {
	guard guard.ConstructorGuard
}

func NewListTenantsQuery() ListTenantsQuery {
	return ListTenantsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListTenantsQuery) Validate() error {
	return q.guard.Validate(ErrListTenantsQueryIsNotConstructed)
}

type TenantResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Active            bool            `json:"active"`
	IsOpen            *bool           `json:"is_open"`
	RetentionDays     int             `json:"retention_days"`
	ServiceFeePercent decimal.Decimal `json:"service_fee_percent"`
	CreatedAt         time.Time       `json:"created_at"`
}

type ListTenantsQueryHandler struct {
	db *gorm.DB
}

func NewListTenantsQueryHandler(db *gorm.DB) ListTenantsQueryHandler {
	return ListTenantsQueryHandler{db: db}
}

func (h ListTenantsQueryHandler) Handle(ctx context.Context, query ListTenantsQuery) ([]TenantResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, active, is_open, retention_days, service_fee_percent, created_at
		FROM tenants
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := make([]TenantResponse, 0)
	for rows.Next() {
		var t TenantResponse
		err = rows.Scan(&t.ID, &t.Name, &t.Active, &t.IsOpen, &t.RetentionDays, &t.ServiceFeePercent, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tenants, nil
}

// GetTenantConfigQuery reads the operating settings of a tenant.
type GetTenantConfigQuery struct {
	tenantID string

	guard guard.ConstructorGuard
}

func NewGetTenantConfigQuery(tenantID string) (GetTenantConfigQuery, error) {
	q := GetTenantConfigQuery{guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return GetTenantConfigQuery{}, err
	}
	return q, nil
}

func (q GetTenantConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetTenantConfigQueryIsNotConstructed)
}

// TenantConfigResponse carries the settings the admin screens show.
// RetentionDays is the value the sweep applies.
type TenantConfigResponse struct {
	TenantID          string          `json:"tenant_id"`
	Found             bool            `json:"found"`
	Name              string          `json:"name"`
	Active            bool            `json:"active"`
	IsOpen            bool            `json:"is_open"`
	RetentionDays     int             `json:"retention_days"`
	ServiceFeePercent decimal.Decimal `json:"service_fee_percent"`
}

type GetTenantConfigQueryHandler struct {
	db *gorm.DB
}

func NewGetTenantConfigQueryHandler(db *gorm.DB) GetTenantConfigQueryHandler {
	return GetTenantConfigQueryHandler{db: db}
}

// Handle answers the defaults (active, open, default retention, no fee) with
// Found false when the tenant does not exist.
func (h GetTenantConfigQueryHandler) Handle(ctx context.Context, query GetTenantConfigQuery) (TenantConfigResponse, error) {
	if err := query.Validate(); err != nil {
		return TenantConfigResponse{}, err
	}

	cfg := TenantConfigResponse{
		TenantID:          query.tenantID,
		Active:            true,
		IsOpen:            true,
		RetentionDays:     tenant.DefaultRetentionDays,
		ServiceFeePercent: decimal.Zero,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT name, active, is_open, retention_days, service_fee_percent
		FROM tenants
		WHERE id = ?
	`, query.tenantID).Rows()
	if err != nil {
		return TenantConfigResponse{}, err
	}
	defer rows.Close()

	if rows.Next() {
		var isOpen *bool
		var retention int
		if err = rows.Scan(&cfg.Name, &cfg.Active, &isOpen, &retention, &cfg.ServiceFeePercent); err != nil {
			return TenantConfigResponse{}, err
		}
		cfg.Found = true
		cfg.IsOpen = isOpen == nil || *isOpen
		cfg.RetentionDays = tenant.EffectiveRetention(retention)
	}

	if err = rows.Err(); err != nil {
		return TenantConfigResponse{}, err
	}

	return cfg, nil
}

// CountTenantDataQuery counts the records a wipe of the tenant would delete.
type CountTenantDataQuery struct {
	tenantID string

	guard guard.ConstructorGuard
}

func NewCountTenantDataQuery(tenantID string) (CountTenantDataQuery, error) {
	q := CountTenantDataQuery{guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return CountTenantDataQuery{}, err
	}
	return q, nil
}

func (q CountTenantDataQuery) Validate() error {
	return q.guard.Validate(ErrCountTenantDataQueryIsNotConstructed)
}

type TenantDataCountResponse struct {
	Users           int64 `json:"users"`
	Products        int64 `json:"products"`
	Categories      int64 `json:"categories"`
	Orders          int64 `json:"orders"`
	DailyAggregates int64 `json:"daily_aggregates"`
	Total           int64 `json:"total"`
}

type CountTenantDataQueryHandler struct {
	db *gorm.DB
}

func NewCountTenantDataQueryHandler(db *gorm.DB) CountTenantDataQueryHandler {
	return CountTenantDataQueryHandler{db: db}
}

func (h CountTenantDataQueryHandler) Handle(ctx context.Context, query CountTenantDataQuery) (TenantDataCountResponse, error) {
	if err := query.Validate(); err != nil {
		return TenantDataCountResponse{}, err
	}

	var counts TenantDataCountResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE tenant_id = @tenant) AS users,
			(SELECT COUNT(*) FROM products WHERE tenant_id = @tenant) AS products,
			(SELECT COUNT(*) FROM categories WHERE tenant_id = @tenant) AS categories,
			(SELECT COUNT(*) FROM orders WHERE tenant_id = @tenant) AS orders,
			(SELECT COUNT(*) FROM daily_aggregates WHERE tenant_id = @tenant) AS daily_aggregates
	`, map[string]any{"tenant": query.tenantID}).Row().Scan(
		&counts.Users,
		&counts.Products,
		&counts.Categories,
		&counts.Orders,
		&counts.DailyAggregates,
	)
	if err != nil {
		return TenantDataCountResponse{}, err
	}

	counts.Total = counts.Users + counts.Products + counts.Categories + counts.Orders + counts.DailyAggregates
	return counts, nil
}
