package commands

import (
	"errors"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	cmd := LoginCommand{password: password, guard: guard.NewConstructorGuard()}

	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}

	if err := errors.Join(setEmail(&cmd.email, email), passwordErr); err != nil {
		return LoginCommand{}, err
	}
	return cmd, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string    { return c.email }
func (c LoginCommand) Password() string { return c.password }
