package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListCategoriesQueryIsNotConstructed = errors.New(
		"ListCategoriesQuery must be created via NewListCategoriesQuery constructor",
	)
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery or NewGetMenuQuery",
	)
)

// ListCategoriesQuery lists a tenant's categories sorted by name.
type ListCategoriesQuery struct {
	tenantID string

	guard guard.ConstructorGuard
}

func NewListCategoriesQuery(tenantID string) (ListCategoriesQuery, error) {
	q := ListCategoriesQuery{guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return ListCategoriesQuery{}, err
	}
	return q, nil
}

func (q ListCategoriesQuery) Validate() error {
	return q.guard.Validate(ErrListCategoriesQueryIsNotConstructed)
}

func (q ListCategoriesQuery) TenantID() string { return q.tenantID }

type CategoryResponse struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
}

// ListProductsQuery lists a tenant's products. The menu variant keeps only
// available ones.
type ListProductsQuery struct {
	tenantID      string
	availableOnly bool

	guard guard.ConstructorGuard
}

func NewListProductsQuery(tenantID string) (ListProductsQuery, error) {
	return newListProductsQuery(tenantID, false)
}

// NewGetMenuQuery lists only the products that can be ordered.
func NewGetMenuQuery(tenantID string) (ListProductsQuery, error) {
	return newListProductsQuery(tenantID, true)
}

func newListProductsQuery(tenantID string, availableOnly bool) (ListProductsQuery, error) {
	q := ListProductsQuery{availableOnly: availableOnly, guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return ListProductsQuery{}, err
	}
	return q, nil
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) TenantID() string    { return q.tenantID }
func (q ListProductsQuery) AvailableOnly() bool { return q.availableOnly }

type ProductResponse struct {
	ID        kernel.UUID     `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
}
