package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/storeclock"

	"github.com/hashicorp/go-multierror"
)

// DefaultSweepPause is the wait between two delete batches.
const DefaultSweepPause = 100 * time.Millisecond

// SweepResult counts what one sweep removed.
type SweepResult struct {
	OrdersDeleted     int
	AggregatesDeleted int
}

// SweepTenantCommandHandler runs the two retention phases:
//
//  1. orders created before the start of today (store-local) are deleted;
//  2. daily aggregates dated before today minus the tenant's retention are
//     deleted with their counters.
//
// Each phase deletes in batches of BatchSize, one transaction per batch,
// pausing between batches. A failing phase stops; the other still runs.
type SweepTenantCommandHandler struct {
	uowFactory MaintenanceUoWFactory
	calendar   storeclock.Calendar
	pause      time.Duration
	batchSize  int
}

// NewSweepTenantCommandHandler returns a handler. A negative pause means the
// default; zero disables pausing.
func NewSweepTenantCommandHandler(
	uowFactory MaintenanceUoWFactory,
	calendar storeclock.Calendar,
	pause time.Duration,
) SweepTenantCommandHandler {
	if pause < 0 {
		pause = DefaultSweepPause
	}
	return SweepTenantCommandHandler{
		uowFactory: uowFactory,
		calendar:   calendar,
		pause:      pause,
		batchSize:  BatchSize,
	}
}

func (h *SweepTenantCommandHandler) Handle(ctx context.Context, cmd SweepTenantCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	var (
		result SweepResult
		merr   *multierror.Error
		err    error
	)

	startOfToday := h.calendar.StartOfToday()
	result.OrdersDeleted, err = h.drain(ctx, func(ctx context.Context, uow MaintenanceUoW) (int, error) {
		return uow.OrderRepository().DeleteCreatedBefore(ctx, cmd.TenantID(), startOfToday, h.batchSize)
	})
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("orders phase: %w", err))
	}

	retention, err := h.retentionDays(ctx, cmd.TenantID())
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("aggregates phase: %w", err))
		return result, merr.ErrorOrNil()
	}

	cutoff := h.calendar.Today().AddDays(-retention)
	result.AggregatesDeleted, err = h.drain(ctx, func(ctx context.Context, uow MaintenanceUoW) (int, error) {
		return uow.AggregateRepository().DeleteDatedBefore(ctx, cmd.TenantID(), cutoff, h.batchSize)
	})
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("aggregates phase: %w", err))
	}

	return result, merr.ErrorOrNil()
}

// retentionDays reads the tenant's policy; a missing tenant uses the default.
func (h *SweepTenantCommandHandler) retentionDays(ctx context.Context, tenantID string) (int, error) {
	uow := h.uowFactory.Create()
	t, err := uow.TenantRepository().Get(ctx, tenantID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return tenant.DefaultRetentionDays, nil
	}
	if err != nil {
		return 0, err
	}
	return t.EffectiveRetentionDays(), nil
}

// drain repeats deleteBatch until a batch comes back short.
func (h *SweepTenantCommandHandler) drain(
	ctx context.Context,
	deleteBatch func(ctx context.Context, uow MaintenanceUoW) (int, error),
) (int, error) {
	total := 0
	for {
		n, err := h.batch(ctx, deleteBatch)
		total += n
		if err != nil {
			return total, err
		}
		if n < h.batchSize {
			return total, nil
		}
		if err = h.wait(ctx); err != nil {
			return total, err
		}
	}
}

func (h *SweepTenantCommandHandler) batch(
	ctx context.Context,
	deleteBatch func(ctx context.Context, uow MaintenanceUoW) (int, error),
) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := deleteBatch(ctx, uow)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}

func (h *SweepTenantCommandHandler) wait(ctx context.Context) error {
	if h.pause == 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.calendar.Clock().After(h.pause):
		return nil
	}
}
