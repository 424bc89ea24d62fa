package commands

import (
	"context"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"

	"github.com/benbjohnson/clock"
)

// RegisterSuperAdminCommandHandler creates the subject on the primary auth
// context; setup runs before anyone is signed in.
type RegisterSuperAdminCommandHandler struct {
	auth       ports.AuthProvider
	uowFactory UserUoWFactory
	clock      clock.Clock
}

func NewRegisterSuperAdminCommandHandler(
	auth ports.AuthProvider,
	uowFactory UserUoWFactory,
	clk clock.Clock,
) RegisterSuperAdminCommandHandler {
	return RegisterSuperAdminCommandHandler{auth: auth, uowFactory: uowFactory, clock: clk}
}

func (h *RegisterSuperAdminCommandHandler) Handle(ctx context.Context, cmd RegisterSuperAdminCommand) (ports.Subject, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Subject{}, err
	}

	subject, err := h.auth.CreateSubject(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return ports.Subject{}, TranslateAuthError(err)
	}

	record, err := user.NewUser(subject.UID, subject.Email, user.SuperAdmin, "", cmd.Name(), h.clock.Now())
	if err != nil {
		return ports.Subject{}, err
	}

	if err = addUser(ctx, h.uowFactory, record); err != nil {
		return ports.Subject{}, err
	}

	return subject, nil
}
