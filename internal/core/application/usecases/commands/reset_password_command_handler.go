package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/guard"
)

var ErrResetPasswordCommandIsNotConstructed = errors.New(
	"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
)

type ResetPasswordCommand struct { //nolint:recvcheck //using for validation
	email string

	guard guard.ConstructorGuard
}

func NewResetPasswordCommand(email string) (ResetPasswordCommand, error) {
	cmd := ResetPasswordCommand{guard: guard.NewConstructorGuard()}
	if err := setEmail(&cmd.email, email); err != nil {
		return ResetPasswordCommand{}, err
	}
	return cmd, nil
}

func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

func (c ResetPasswordCommand) Email() string { return c.email }

// ResetPasswordCommandHandler asks the auth provider to e-mail a reset link.
type ResetPasswordCommandHandler struct {
	auth ports.AuthProvider
}

func NewResetPasswordCommandHandler(auth ports.AuthProvider) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{auth: auth}
}

func (h *ResetPasswordCommandHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return TranslateAuthError(h.auth.SendPasswordReset(ctx, cmd.Email()))
}
