package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Scheduler runs work after the caller returned.
type Scheduler interface {
	Go(ctx context.Context, name string, task func(ctx context.Context) error) error
}

// OrderAggregator folds a paid order into its daily aggregate.
type OrderAggregator interface {
	Handle(ctx context.Context, cmd AggregateOrderCommand) error
}

// UpdateOrderStatusCommandHandler writes the status chosen on the floor. When
// the order becomes paid it schedules the analytics update and returns
// without waiting for it; aggregation failures never reach the caller.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  Scheduler
	aggregator OrderAggregator
	clock      clock.Clock
	logger     zerolog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler Scheduler,
	aggregator OrderAggregator,
	clk clock.Clock,
	logger zerolog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		aggregator: aggregator,
		clock:      clk,
		logger:     logger,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.write(ctx, cmd); err != nil {
		return err
	}

	if cmd.Status() == order.Paid {
		h.scheduleAggregation(ctx, cmd)
	}

	return nil
}

func (h *UpdateOrderStatusCommandHandler) write(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if err = o.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateOrderStatusCommandHandler) scheduleAggregation(ctx context.Context, cmd UpdateOrderStatusCommand) {
	aggregate, err := NewAggregateOrderCommand(cmd.TenantID(), cmd.OrderID())
	if err != nil {
		h.logger.Error().Err(err).Str("order_id", cmd.OrderID().String()).Msg("build aggregation command")
		return
	}

	err = h.scheduler.Go(ctx, "aggregate-order", func(taskCtx context.Context) error {
		return h.aggregator.Handle(taskCtx, aggregate)
	})
	if err != nil {
		h.logger.Error().Err(err).
			Str("tenant_id", cmd.TenantID()).
			Str("order_id", cmd.OrderID().String()).
			Msg("schedule aggregation")
	}
}
