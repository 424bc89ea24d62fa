package commands

import (
	"context"
	"errors"

	"restaurant/internal/pkg/errs"
)

// RevokeAccessCommandHandler hard-deletes an access record. A record that is
// already gone is not an error; a record of another tenant or role is
// reported as not found.
type RevokeAccessCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRevokeAccessCommandHandler(uowFactory UserUoWFactory) RevokeAccessCommandHandler {
	return RevokeAccessCommandHandler{uowFactory: uowFactory}
}

func (h *RevokeAccessCommandHandler) Handle(ctx context.Context, cmd RevokeAccessCommand) error {
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

	users := uow.UserRepository()
	record, err := users.Get(ctx, cmd.UID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if record.TenantID() != cmd.TenantID() || record.Role() != cmd.Role() {
		return errs.NewObjectNotFoundError("uid", cmd.UID())
	}

	if err = users.Delete(ctx, cmd.UID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
