package commands

import (
	"context"

	"github.com/benbjohnson/clock"
)

// UpdateOrderCommandHandler amends an order: it goes back to pending and is
// flagged as modified so the kitchen notices the change.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle fails with errs.ErrValueIsInvalid when the order is already paid,
// finalised or cancelled, and with errs.ErrObjectNotFound when the tenant has
// no such order.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Amend(cmd.Items(), cmd.Total(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
