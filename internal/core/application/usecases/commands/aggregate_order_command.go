package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrAggregateOrderCommandIsNotConstructed = errors.New(
	"AggregateOrderCommand must be created via NewAggregateOrderCommand constructor",
)

// AggregateOrderCommand asks for one paid order to be counted in its tenant's
// daily aggregate.
type AggregateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAggregateOrderCommand(tenantID string, orderID kernel.UUID) (AggregateOrderCommand, error) {
	cmd := AggregateOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}

	if err := errors.Join(setTenant(&cmd.tenantID, tenantID), orderID.Validate()); err != nil {
		return AggregateOrderCommand{}, err
	}

	return cmd, nil
}

func (c AggregateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAggregateOrderCommandIsNotConstructed)
}

func (c AggregateOrderCommand) TenantID() string     { return c.tenantID }
func (c AggregateOrderCommand) OrderID() kernel.UUID { return c.orderID }
