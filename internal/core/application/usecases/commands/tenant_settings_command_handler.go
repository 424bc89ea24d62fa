package commands

import (
	"context"
)

// TenantSettingsCommandHandler loads the tenant, applies the change and saves
// it. Saving a tenant publishes a change on the tenants feed, which is what
// the access gates of signed-in sessions react to.
type TenantSettingsCommandHandler struct {
	uowFactory TenantUoWFactory
}

func NewTenantSettingsCommandHandler(uowFactory TenantUoWFactory) TenantSettingsCommandHandler {
	return TenantSettingsCommandHandler{uowFactory: uowFactory}
}

func (h *TenantSettingsCommandHandler) Handle(ctx context.Context, cmd TenantSettingsCommand) error {
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

	repo := uow.TenantRepository()
	t, err := repo.Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	if err = cmd.apply(t); err != nil {
		return err
	}

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
