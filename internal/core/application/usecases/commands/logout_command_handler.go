package commands

import (
	"context"
	"errors"
	"strings"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

type LogoutCommand struct { //nolint:recvcheck //using for validation
	uid string

	guard guard.ConstructorGuard
}

func NewLogoutCommand(uid string) (LogoutCommand, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return LogoutCommand{}, errs.NewValueIsRequiredError("uid")
	}
	return LogoutCommand{uid: uid, guard: guard.NewConstructorGuard()}, nil
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

func (c LogoutCommand) UID() string { return c.uid }

// TenantForgetter clears the persisted active tenant.
type TenantForgetter interface {
	Forget()
}

// LogoutCommandHandler revokes the subject's tokens and forgets the active
// tenant, so the next login starts clean.
type LogoutCommandHandler struct {
	auth     ports.AuthProvider
	resolver TenantForgetter
}

func NewLogoutCommandHandler(auth ports.AuthProvider, resolver TenantForgetter) LogoutCommandHandler {
	return LogoutCommandHandler{auth: auth, resolver: resolver}
}

func (h *LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.resolver.Forget()

	return TranslateAuthError(h.auth.SignOut(ctx, cmd.UID()))
}
