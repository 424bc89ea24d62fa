package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of its New*Query constructors",
)

// OrderView selects which orders a listing shows and in which order.
type OrderView string

const (
	// ActiveForTableView lists a table's pending and ready orders, newest first.
	ActiveForTableView OrderView = "table"
	// ReadyView lists ready orders, oldest first.
	ReadyView OrderView = "ready"
	// SalesView lists paid and finalizado orders, newest first.
	SalesView OrderView = "sales"
	// KitchenView lists pending and ready orders, oldest first.
	KitchenView OrderView = "kitchen"
)

// ListOrdersQuery is one of the order listings of the floor screens.
//
//	query, err := queries.NewSalesHistoryQuery("empresa_01", &from)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	tenantID string
	view     OrderView
	table    order.TableNumber
	from     *time.Time

	guard guard.ConstructorGuard
}

func NewActiveOrdersForTableQuery(tenantID string, table order.TableNumber) (ListOrdersQuery, error) {
	q, err := newListOrdersQuery(tenantID, ActiveForTableView)
	q.table = table
	return q, err
}

func NewReadyOrdersQuery(tenantID string) (ListOrdersQuery, error) {
	return newListOrdersQuery(tenantID, ReadyView)
}

// NewSalesHistoryQuery limits the history to orders created at or after from
// when it is not nil.
func NewSalesHistoryQuery(tenantID string, from *time.Time) (ListOrdersQuery, error) {
	q, err := newListOrdersQuery(tenantID, SalesView)
	q.from = from
	return q, err
}

func NewKitchenOrdersQuery(tenantID string) (ListOrdersQuery, error) {
	return newListOrdersQuery(tenantID, KitchenView)
}

func newListOrdersQuery(tenantID string, view OrderView) (ListOrdersQuery, error) {
	q := ListOrdersQuery{view: view, guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) TenantID() string { return q.tenantID }
func (q ListOrdersQuery) View() OrderView  { return q.view }

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID          kernel.UUID     `json:"id"`
	TenantID    string          `json:"tenant_id"`
	TableNumber int             `json:"table_number"`
	Status      order.Status    `json:"status"`
	Items       []ItemResponse  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	IsModified  bool            `json:"is_modified"`
	ModifiedAt  *time.Time      `json:"modified_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
}

// ItemResponse is one order line. The field names match the stored items
// document.
type ItemResponse struct {
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Qty      int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}
