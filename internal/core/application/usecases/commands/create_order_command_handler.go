package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"

	"github.com/benbjohnson/clock"
)

// CreateOrderCommandHandler persists a new pending order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.New())
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "empresa_01", 7, items, total)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle creates the order in pending status, unmodified, stamped with the
// current time.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.TenantID(), cmd.TableNumber(), cmd.Items(), cmd.Total(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
