package commands

import (
	"context"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
)

// StaffRegistrar registers an owner or employee.
type StaffRegistrar interface {
	Handle(ctx context.Context, cmd RegisterStaffCommand) (ports.Subject, error)
}

// ReplaceOwnerAccessCommandHandler registers the new owner first, so a
// failed registration leaves the old owner in place.
type ReplaceOwnerAccessCommandHandler struct {
	registrar StaffRegistrar
	revoker   *RevokeAccessCommandHandler
}

func NewReplaceOwnerAccessCommandHandler(
	registrar StaffRegistrar,
	uowFactory UserUoWFactory,
) ReplaceOwnerAccessCommandHandler {
	revoker := NewRevokeAccessCommandHandler(uowFactory)
	return ReplaceOwnerAccessCommandHandler{registrar: registrar, revoker: &revoker}
}

func (h *ReplaceOwnerAccessCommandHandler) Handle(ctx context.Context, cmd ReplaceOwnerAccessCommand) (ports.Subject, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Subject{}, err
	}

	subject, err := h.registrar.Handle(ctx, cmd.Owner())
	if err != nil {
		return ports.Subject{}, err
	}

	revoke, err := NewRevokeAccessCommand(cmd.Owner().TenantID(), cmd.PreviousUID(), user.Owner)
	if err != nil {
		return ports.Subject{}, err
	}

	if err = h.revoker.Handle(ctx, revoke); err != nil {
		return subject, err
	}

	return subject, nil
}
