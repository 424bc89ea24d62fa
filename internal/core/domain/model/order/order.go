package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a table's order. Every order belongs to exactly
// one tenant; repositories refuse to read or write it under another one.
//
// Invariants:
//   - tenant id is never empty
//   - analyticsProcessed goes from false to true at most once, and only while
//     the order is a sale (paid or finalizado)
//   - a cancelled order never changes status again
type Order struct {
	id                 kernel.UUID
	tenantID           string
	tableNumber        TableNumber
	status             Status
	items              []Item
	totalAmount        decimal.Decimal
	createdAt          time.Time
	isModified         bool
	analyticsProcessed bool
	modifiedAt         *time.Time
	cancelledAt        *time.Time

	isConstructed bool
}

// NewOrder opens a pending, unmodified order.
//
//	o, err := order.NewOrder(kernel.NewUUID(), "empresa_01", 7, items, decimal.NewFromInt(30), clock.Now())
func NewOrder(
	id kernel.UUID,
	tenantID string,
	table TableNumber,
	items []Item,
	total decimal.Decimal,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		tableNumber:   table,
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage without re-running lifecycle
// rules, only the field validation.
func RestoreOrder(
	id kernel.UUID,
	tenantID string,
	table TableNumber,
	status Status,
	items []Item,
	total decimal.Decimal,
	createdAt time.Time,
	isModified bool,
	analyticsProcessed bool,
	modifiedAt *time.Time,
	cancelledAt *time.Time,
) (*Order, error) {
	o := &Order{
		tableNumber:        table,
		createdAt:          createdAt,
		isModified:         isModified,
		analyticsProcessed: analyticsProcessed,
		modifiedAt:         modifiedAt,
		cancelledAt:        cancelledAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setStatus(status),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) TenantID() string {
	return o.tenantID
}

func (o *Order) TableNumber() TableNumber {
	return o.tableNumber
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) IsModified() bool {
	return o.isModified
}

func (o *Order) AnalyticsProcessed() bool {
	return o.analyticsProcessed
}

func (o *Order) ModifiedAt() *time.Time {
	return o.modifiedAt
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// Amend replaces the lines and total after staff edited the order. The order
// goes back to pending even if the kitchen already marked it ready.
func (o *Order) Amend(items []Item, total decimal.Decimal, at time.Time) error {
	next, err := o.status.Amend()
	if err != nil {
		return err
	}

	if err = validateTotal(total); err != nil {
		return err
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = total
	o.status = next
	o.isModified = true
	o.modifiedAt = &at
	return nil
}

// Cancel moves the order to cancelled and stamps cancelledAt.
func (o *Order) Cancel(at time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.cancelledAt = &at
	return nil
}

// ChangeStatus writes the status chosen on the floor. Cancelling through this
// path stamps cancelledAt like Cancel does.
func (o *Order) ChangeStatus(next Status, at time.Time) error {
	changed, err := o.status.ChangeTo(next)
	if err != nil {
		return err
	}

	if changed == Cancelled && o.cancelledAt == nil {
		o.cancelledAt = &at
	}
	o.status = changed
	return nil
}

// NeedsAnalytics reports whether the order still has to be folded into the
// daily aggregate.
func (o *Order) NeedsAnalytics() bool {
	return o.status.IsSale() && !o.analyticsProcessed
}

// MarkAnalyticsProcessed flips analyticsProcessed. It refuses a second call and
// orders that are not sales.
func (o *Order) MarkAnalyticsProcessed() error {
	if o.analyticsProcessed {
		return errs.NewValueIsInvalidErrorWithCause("analytics_processed", fmt.Errorf("order %s already counted", o.id))
	}
	if !o.status.IsSale() {
		return errs.NewValueIsInvalidErrorWithCause(
			"analytics_processed",
			fmt.Errorf("%s order is not a sale", o.status),
		)
	}

	o.analyticsProcessed = true
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if err := validateTotal(total); err != nil {
		return err
	}
	o.totalAmount = total
	return nil
}

func validateTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total_amount", fmt.Errorf("%s is negative", total))
	}
	return nil
}
