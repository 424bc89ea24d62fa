package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/analytics"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/storeclock"
)

// AggregateOrderCommandHandler counts a paid order exactly once.
//
// The order row stays locked from the read to the commit, so a second
// trigger for the same order waits, then sees analytics_processed and stops.
// The day bucket is the store-local date of the run, not of the order.
type AggregateOrderCommandHandler struct {
	uowFactory AnalyticsUoWFactory
	calendar   storeclock.Calendar
}

func NewAggregateOrderCommandHandler(uowFactory AnalyticsUoWFactory, calendar storeclock.Calendar) AggregateOrderCommandHandler {
	return AggregateOrderCommandHandler{uowFactory: uowFactory, calendar: calendar}
}

// Handle is a no-op for missing orders, orders already counted and orders
// that are no longer sales.
func (h *AggregateOrderCommandHandler) Handle(ctx context.Context, cmd AggregateOrderCommand) error {
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

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.TenantID(), cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !o.NeedsAnalytics() {
		return nil
	}

	delta, err := analytics.NewDelta(o, h.calendar.Today(), h.calendar.Now())
	if err != nil {
		return err
	}

	if err = uow.AggregateRepository().ApplyDelta(ctx, delta); err != nil {
		return err
	}

	if err = o.MarkAnalyticsProcessed(); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
