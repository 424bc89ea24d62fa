package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// CreateOrderCommand opens a new order on a table.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	item, _ := order.NewItem("X-Burger", "Lanches", 2, decimal.NewFromInt(25))
//	cmd, err := NewCreateOrderCommand(orderID, "empresa_01", 7, []order.Item{item}, decimal.NewFromInt(50))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.New())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	tenantID    string
	tableNumber order.TableNumber
	items       []order.Item
	total       decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. The total is taken as sent
// by the client; it is not recomputed from the items.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID string,
	table order.TableNumber,
	items []order.Item,
	total decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		tableNumber: table,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) TenantID() string {
	return c.tenantID
}

func (c CreateOrderCommand) TableNumber() order.TableNumber {
	return c.tableNumber
}

func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderCommand) Total() decimal.Decimal {
	return c.total
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID string) error {
	return setTenant(&c.tenantID, tenantID)
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsOutOfRangeError("total", total, 0, "unbounded")
	}

	c.total = total
	return nil
}

// setTenant is shared by every tenant-scoped command.
func setTenant(dst *string, tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}

	*dst = tenantID
	return nil
}
