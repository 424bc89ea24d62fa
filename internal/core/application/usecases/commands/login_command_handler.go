package commands

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// LoginResult is what the client needs after signing in. TenantID is empty
// for super admins and guests.
type LoginResult struct {
	Subject   ports.Subject
	Token     string
	ExpiresAt time.Time
	Role      user.Role
	TenantID  string
}

// LoginCommandHandler signs in and looks up the subject's access record. A
// subject without a record signs in as a guest; the access policy denies it
// everything.
type LoginCommandHandler struct {
	auth       ports.AuthProvider
	uowFactory UserUoWFactory
}

func NewLoginCommandHandler(auth ports.AuthProvider, uowFactory UserUoWFactory) LoginCommandHandler {
	return LoginCommandHandler{auth: auth, uowFactory: uowFactory}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	session, err := h.auth.SignIn(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return LoginResult{}, TranslateAuthError(err)
	}

	result := LoginResult{
		Subject:   session.Subject,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Role:      user.Guest,
	}

	record, err := h.uowFactory.Create().UserRepository().Get(ctx, session.Subject.UID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result, nil
	}
	if err != nil {
		return LoginResult{}, err
	}

	result.Role = record.Role()
	result.TenantID = record.TenantID()
	return result, nil
}
