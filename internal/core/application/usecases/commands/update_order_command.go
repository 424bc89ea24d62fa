package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the items and total of an open order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	orderID  kernel.UUID
	items    []order.Item
	total    decimal.Decimal

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	tenantID string,
	orderID kernel.UUID,
	items []order.Item,
	total decimal.Decimal,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setTenant(&cmd.tenantID, tenantID),
		orderID.Validate(),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) TenantID() string       { return c.tenantID }
func (c UpdateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c UpdateOrderCommand) Total() decimal.Decimal { return c.total }

func (c UpdateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *UpdateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *UpdateOrderCommand) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsOutOfRangeError("total", total, 0, "unbounded")
	}
	c.total = total
	return nil
}
