package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(tenantID string, orderID kernel.UUID) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}

	if err := errors.Join(setTenant(&cmd.tenantID, tenantID), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) TenantID() string     { return c.tenantID }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
