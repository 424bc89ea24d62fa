package commands

import (
	"context"
	"fmt"
)

// WipeTenantCommandHandler removes a tenant in dependency order: access
// records first so nobody can sign in to a half-deleted tenant, then catalog,
// orders and aggregates page by page, and the tenant record last. A failure
// stops the wipe; running it again resumes where it stopped.
type WipeTenantCommandHandler struct {
	uowFactory UoWFactory
	batchSize  int
}

func NewWipeTenantCommandHandler(uowFactory UoWFactory) WipeTenantCommandHandler {
	return WipeTenantCommandHandler{uowFactory: uowFactory, batchSize: BatchSize}
}

type wipePage func(ctx context.Context, uow UoW, tenantID string, limit int) (int, error)

func (h *WipeTenantCommandHandler) Handle(ctx context.Context, cmd WipeTenantCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	steps := []struct {
		step WipeStep
		page wipePage
	}{
		{WipeUsers, func(ctx context.Context, uow UoW, id string, _ int) (int, error) {
			return uow.UserRepository().DeleteByTenant(ctx, id)
		}},
		{WipeProducts, func(ctx context.Context, uow UoW, id string, limit int) (int, error) {
			return uow.ProductRepository().DeleteByTenant(ctx, id, limit)
		}},
		{WipeCategories, func(ctx context.Context, uow UoW, id string, limit int) (int, error) {
			return uow.CategoryRepository().DeleteByTenant(ctx, id, limit)
		}},
		{WipeOrders, func(ctx context.Context, uow UoW, id string, limit int) (int, error) {
			return uow.OrderRepository().DeleteByTenant(ctx, id, limit)
		}},
		{WipeAggregates, func(ctx context.Context, uow UoW, id string, limit int) (int, error) {
			return uow.AggregateRepository().DeleteByTenant(ctx, id, limit)
		}},
	}

	for _, s := range steps {
		if err := h.drain(ctx, cmd, s.step, s.page); err != nil {
			return fmt.Errorf("wipe %s: %w", s.step, err)
		}
	}

	_, err := h.inTx(ctx, func(uow UoW) (int, error) {
		return 1, uow.TenantRepository().Delete(ctx, cmd.TenantID())
	})
	if err != nil {
		return fmt.Errorf("wipe %s: %w", WipeTenant, err)
	}
	cmd.Progress()(WipeTenant, 1)

	return nil
}

func (h *WipeTenantCommandHandler) drain(ctx context.Context, cmd WipeTenantCommand, step WipeStep, page wipePage) error {
	total := 0
	for {
		n, err := h.inTx(ctx, func(uow UoW) (int, error) {
			return page(ctx, uow, cmd.TenantID(), h.batchSize)
		})
		if err != nil {
			return err
		}

		total += n
		cmd.Progress()(step, total)

		if n < h.batchSize {
			return nil
		}
	}
}

func (h *WipeTenantCommandHandler) inTx(ctx context.Context, fn func(uow UoW) (int, error)) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := fn(uow)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
