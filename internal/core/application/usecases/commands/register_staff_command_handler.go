package commands

import (
	"context"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// RegisterStaffCommandHandler creates the subject on a disposable auth
// context so that the signed-in admin keeps their own session, then stores
// the access record. The disposable context is closed whatever happens, and a
// subject whose record could not be stored is deleted again.
type RegisterStaffCommandHandler struct {
	auth       ports.IsolatedAuthFactory
	uowFactory UserUoWFactory
	clock      clock.Clock
	logger     zerolog.Logger
}

func NewRegisterStaffCommandHandler(
	auth ports.IsolatedAuthFactory,
	uowFactory UserUoWFactory,
	clk clock.Clock,
	logger zerolog.Logger,
) RegisterStaffCommandHandler {
	return RegisterStaffCommandHandler{auth: auth, uowFactory: uowFactory, clock: clk, logger: logger}
}

func (h *RegisterStaffCommandHandler) Handle(ctx context.Context, cmd RegisterStaffCommand) (ports.Subject, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Subject{}, err
	}

	isolated, err := h.auth.Open(ctx)
	if err != nil {
		return ports.Subject{}, TranslateAuthError(err)
	}

	defer func() {
		if closeErr := isolated.Close(ctx); closeErr != nil {
			h.logger.Warn().Err(closeErr).Msg("close isolated auth context")
		}
	}()

	subject, err := isolated.CreateSubject(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return ports.Subject{}, TranslateAuthError(err)
	}

	record, err := user.NewUser(subject.UID, subject.Email, cmd.Role(), cmd.TenantID(), cmd.Name(), h.clock.Now())
	if err == nil {
		err = addUser(ctx, h.uowFactory, record)
	}
	if err != nil {
		h.discardSubject(ctx, isolated, subject)
		return ports.Subject{}, err
	}

	return subject, nil
}

// discardSubject removes a subject whose access record could not be stored,
// so that the e-mail can be registered again.
func (h *RegisterStaffCommandHandler) discardSubject(ctx context.Context, isolated ports.IsolatedAuth, subject ports.Subject) {
	if err := isolated.DeleteSubject(ctx, subject.UID); err != nil {
		h.logger.Error().Err(err).
			Str("uid", subject.UID).
			Str("email", subject.Email).
			Msg("auth subject left without access record")
	}
}

func addUser(ctx context.Context, factory UserUoWFactory, record *user.User) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
