package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthProvider struct{ mock.Mock }

func (m *MockAuthProvider) SignIn(ctx context.Context, email, password string) (ports.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ports.Session), args.Error(1)
}

func (m *MockAuthProvider) SignOut(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockAuthProvider) SendPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthProvider) VerifyToken(ctx context.Context, token string) (ports.Subject, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.Subject), args.Error(1)
}

func (m *MockAuthProvider) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ports.Subject), args.Error(1)
}

type MockIsolatedAuth struct{ mock.Mock }

func (m *MockIsolatedAuth) CreateSubject(ctx context.Context, email, password string) (ports.Subject, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ports.Subject), args.Error(1)
}

func (m *MockIsolatedAuth) DeleteSubject(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIsolatedAuth) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockIsolatedAuthFactory struct{ mock.Mock }

func (m *MockIsolatedAuthFactory) Open(ctx context.Context) (ports.IsolatedAuth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.IsolatedAuth), args.Error(1)
}

type MockForgetter struct{ mock.Mock }

func (m *MockForgetter) Forget() { m.Called() }

func userFactory(uow *MockUoW) *MockFactory[commands.UserUoW] {
	f := new(MockFactory[commands.UserUoW])
	f.On("Create").Return(uow)
	return f
}

func TestTranslateAuthError(t *testing.T) {
	tests := map[string]string{
		ports.AuthInvalidEmail:      "E-mail inválido.",
		ports.AuthWeakPassword:      "Senha fraca.",
		ports.AuthEmailAlreadyInUse: "E-mail já em uso.",
		ports.AuthUserNotFound:      "Usuário não encontrado.",
		ports.AuthWrongPassword:     "Senha incorreta.",
		"auth/too-many-requests":    "Erro: auth/too-many-requests",
	}

	for code, want := range tests {
		err := commands.TranslateAuthError(errs.NewAuthError(code, ""))
		var authErr *errs.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, code, authErr.Code)
		assert.Equal(t, want, authErr.Message)
	}

	plain := errors.New("network")
	assert.Equal(t, plain, commands.TranslateAuthError(plain))
	assert.NoError(t, commands.TranslateAuthError(nil))
}

func TestRegisterStaffCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clk := fixedClock()
	cmd, err := commands.NewRegisterEmployeeCommand("t1", "Ana", "ana@casa.com", "secret1")
	require.NoError(t, err)

	isolated := new(MockIsolatedAuth)
	factory := new(MockIsolatedAuthFactory)
	factory.On("Open", ctx).Return(isolated, nil).Once()
	mock.InOrder(
		isolated.On("CreateSubject", ctx, "ana@casa.com", "secret1").
			Return(ports.Subject{UID: "u1", Email: "ana@casa.com"}, nil).Once(),
		isolated.On("Close", ctx).Return(nil).Once(),
	)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	var saved *user.User
	expectTx(ctx, uow, true,
		uow.On("UserRepository").Return(users).Once(),
		users.On("Add", ctx, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*user.User) }).
			Return(nil).Once(),
	)

	h := commands.NewRegisterStaffCommandHandler(factory, userFactory(uow), clk, zerolog.Nop())
	subject, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "u1", subject.UID)
	require.NotNil(t, saved)
	assert.Equal(t, user.Employee, saved.Role())
	assert.Equal(t, "t1", saved.TenantID())
	assert.Equal(t, "Ana", saved.Name())
	isolated.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterStaffCommandHandler_Handle_ClosesContextOnFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterOwnerCommand("t1", "Bia", "bia@casa.com", "123")

	isolated := new(MockIsolatedAuth)
	factory := new(MockIsolatedAuthFactory)
	factory.On("Open", ctx).Return(isolated, nil).Once()
	isolated.On("CreateSubject", ctx, "bia@casa.com", "123").
		Return(ports.Subject{}, errs.NewAuthError(ports.AuthWeakPassword, "")).Once()
	isolated.On("Close", ctx).Return(nil).Once()

	uf := new(MockFactory[commands.UserUoW])
	h := commands.NewRegisterStaffCommandHandler(factory, uf, clock.New(), zerolog.Nop())
	_, err := h.Handle(ctx, cmd)

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Senha fraca.", authErr.Message)
	isolated.AssertExpectations(t)
	uf.AssertNotCalled(t, "Create")
}

func TestRegisterStaffCommandHandler_Handle_DeletesSubjectWhenRecordFails(t *testing.T) {
	for _, deleteErr := range []error{nil, errors.New("admin api down")} {
		ctx := t.Context()
		cmd, _ := commands.NewRegisterEmployeeCommand("t1", "Caio", "caio@casa.com", "secret1")
		storeErr := errors.New("users table locked")

		isolated := new(MockIsolatedAuth)
		factory := new(MockIsolatedAuthFactory)
		factory.On("Open", ctx).Return(isolated, nil).Once()
		mock.InOrder(
			isolated.On("CreateSubject", ctx, "caio@casa.com", "secret1").
				Return(ports.Subject{UID: "u9", Email: "caio@casa.com"}, nil).Once(),
			isolated.On("DeleteSubject", ctx, "u9").Return(deleteErr).Once(),
			isolated.On("Close", ctx).Return(nil).Once(),
		)

		users := new(MockUserRepository)
		uow := new(MockUoW)
		expectTx(ctx, uow, false,
			uow.On("UserRepository").Return(users).Once(),
			users.On("Add", ctx, mock.Anything).Return(storeErr).Once(),
		)

		h := commands.NewRegisterStaffCommandHandler(factory, userFactory(uow), fixedClock(), zerolog.Nop())
		subject, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, storeErr)
		assert.Empty(t, subject.UID)
		isolated.AssertExpectations(t)
		uow.AssertExpectations(t)
	}
}

func TestRegisterSuperAdminCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterSuperAdminCommand("Root", "root@plataforma.com", "secret1")
	require.NoError(t, err)

	auth := new(MockAuthProvider)
	auth.On("CreateSubject", ctx, "root@plataforma.com", "secret1").
		Return(ports.Subject{UID: "root", Email: "root@plataforma.com"}, nil).Once()

	users := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, true,
		uow.On("UserRepository").Return(users).Once(),
		users.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.Role() == user.SuperAdmin && u.TenantID() == ""
		})).Return(nil).Once(),
	)

	h := commands.NewRegisterSuperAdminCommandHandler(auth, userFactory(uow), clock.New())
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func staffRecord(t *testing.T, uid string, role user.Role, tenantID string) *user.User {
	t.Helper()
	u, err := user.NewUser(uid, uid+"@casa.com", role, tenantID, "", time.Now())
	require.NoError(t, err)
	return u
}

func TestRevokeAccessCommandHandler_Handle(t *testing.T) {
	t.Run("deletes the record", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewDeleteEmployeeCommand("t1", "u1")
		require.NoError(t, err)

		users := new(MockUserRepository)
		uow := new(MockUoW)
		expectTx(ctx, uow, true,
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, "u1").Return(staffRecord(t, "u1", user.Employee, "t1"), nil).Once(),
			users.On("Delete", ctx, "u1").Return(nil).Once(),
		)

		h := commands.NewRevokeAccessCommandHandler(userFactory(uow))
		require.NoError(t, h.Handle(ctx, cmd))
		users.AssertExpectations(t)
	})

	t.Run("missing record is fine", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewUnlinkOwnerCommand("t1", "u1")

		users := new(MockUserRepository)
		uow := new(MockUoW)
		expectTx(ctx, uow, false,
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, "u1").Return(nil, errs.NewObjectNotFoundError("uid", "u1")).Once(),
		)

		h := commands.NewRevokeAccessCommandHandler(userFactory(uow))
		require.NoError(t, h.Handle(ctx, cmd))
	})

	t.Run("other tenant is not found", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewDeleteEmployeeCommand("t1", "u1")

		users := new(MockUserRepository)
		uow := new(MockUoW)
		expectTx(ctx, uow, false,
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, "u1").Return(staffRecord(t, "u1", user.Employee, "t2"), nil).Once(),
		)

		h := commands.NewRevokeAccessCommandHandler(userFactory(uow))
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestNewRevokeAccessCommand_RejectsSuperAdmin(t *testing.T) {
	_, err := commands.NewRevokeAccessCommand("t1", "u1", user.SuperAdmin)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

type MockStaffRegistrar struct{ mock.Mock }

func (m *MockStaffRegistrar) Handle(ctx context.Context, cmd commands.RegisterStaffCommand) (ports.Subject, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.Subject), args.Error(1)
}

func TestReplaceOwnerAccessCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReplaceOwnerAccessCommand("t1", "old", "Nova", "nova@casa.com", "secret1")
	require.NoError(t, err)

	registrar := new(MockStaffRegistrar)
	registrar.On("Handle", ctx, cmd.Owner()).Return(ports.Subject{UID: "new"}, nil).Once()

	users := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, true,
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, "old").Return(staffRecord(t, "old", user.Owner, "t1"), nil).Once(),
		users.On("Delete", ctx, "old").Return(nil).Once(),
	)

	h := commands.NewReplaceOwnerAccessCommandHandler(registrar, userFactory(uow))
	subject, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "new", subject.UID)
	users.AssertExpectations(t)
}

func TestReplaceOwnerAccessCommandHandler_Handle_FailedRegistrationKeepsOldOwner(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewReplaceOwnerAccessCommand("t1", "old", "Nova", "nova@casa.com", "secret1")

	registrar := new(MockStaffRegistrar)
	registrar.On("Handle", ctx, cmd.Owner()).
		Return(ports.Subject{}, errs.NewAuthError(ports.AuthEmailAlreadyInUse, "E-mail já em uso.")).Once()

	uf := new(MockFactory[commands.UserUoW])
	h := commands.NewReplaceOwnerAccessCommandHandler(registrar, uf)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAuthFailed)
	uf.AssertNotCalled(t, "Create")
}

func TestLoginCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		record     *user.User
		findErr    error
		wantRole   user.Role
		wantTenant string
	}{
		{"owner", staffRecord(t, "u1", user.Owner, "t1"), nil, user.Owner, "t1"},
		{"no record", nil, errs.NewObjectNotFoundError("uid", "u1"), user.Guest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewLoginCommand("u1@casa.com", "secret1")
			require.NoError(t, err)

			auth := new(MockAuthProvider)
			auth.On("SignIn", ctx, "u1@casa.com", "secret1").
				Return(ports.Session{Subject: ports.Subject{UID: "u1"}, Token: "tok"}, nil).Once()

			users := new(MockUserRepository)
			uow := new(MockUoW)
			uow.On("UserRepository").Return(users).Once()
			if tt.record != nil {
				users.On("Get", ctx, "u1").Return(tt.record, nil).Once()
			} else {
				users.On("Get", ctx, "u1").Return(nil, tt.findErr).Once()
			}

			h := commands.NewLoginCommandHandler(auth, userFactory(uow))
			result, err := h.Handle(ctx, cmd)
			require.NoError(t, err)
			assert.Equal(t, "tok", result.Token)
			assert.Equal(t, tt.wantRole, result.Role)
			assert.Equal(t, tt.wantTenant, result.TenantID)
		})
	}
}

func TestLoginCommandHandler_Handle_WrongPassword(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewLoginCommand("u1@casa.com", "nope")

	auth := new(MockAuthProvider)
	auth.On("SignIn", ctx, "u1@casa.com", "nope").
		Return(ports.Session{}, errs.NewAuthError(ports.AuthWrongPassword, "")).Once()

	h := commands.NewLoginCommandHandler(auth, new(MockFactory[commands.UserUoW]))
	_, err := h.Handle(ctx, cmd)

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Senha incorreta.", authErr.Message)
}

func TestLogoutCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewLogoutCommand("u1")
	require.NoError(t, err)

	auth := new(MockAuthProvider)
	auth.On("SignOut", ctx, "u1").Return(nil).Once()
	forgetter := new(MockForgetter)
	forgetter.On("Forget").Return().Once()

	h := commands.NewLogoutCommandHandler(auth, forgetter)
	require.NoError(t, h.Handle(ctx, cmd))
	auth.AssertExpectations(t)
	forgetter.AssertExpectations(t)
}

func TestResetPasswordCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResetPasswordCommand("x@casa.com")
	require.NoError(t, err)

	auth := new(MockAuthProvider)
	auth.On("SendPasswordReset", ctx, "x@casa.com").
		Return(errs.NewAuthError(ports.AuthUserNotFound, "")).Once()

	h := commands.NewResetPasswordCommandHandler(auth)
	err = h.Handle(ctx, cmd)

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Usuário não encontrado.", authErr.Message)
}
