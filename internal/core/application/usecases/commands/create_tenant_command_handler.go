package commands

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/errs"

	"github.com/benbjohnson/clock"
)

type CreateTenantCommandHandler struct {
	uowFactory TenantUoWFactory
	clock      clock.Clock
}

func NewCreateTenantCommandHandler(uowFactory TenantUoWFactory, clk clock.Clock) CreateTenantCommandHandler {
	return CreateTenantCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle fails with errs.ErrValueIsInvalid when the slug is taken.
func (h *CreateTenantCommandHandler) Handle(ctx context.Context, cmd CreateTenantCommand) (*tenant.Tenant, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := tenant.NewTenant(cmd.Slug(), cmd.Name(), cmd.RetentionDays(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TenantRepository()
	_, err = repo.Get(ctx, t.ID())
	switch {
	case err == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("slug", fmt.Errorf("tenant %q already exists", t.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = repo.Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
