package commands

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/guard"
)

var ErrRegisterSuperAdminCommandIsNotConstructed = errors.New(
	"RegisterSuperAdminCommand must be created via NewRegisterSuperAdminCommand constructor",
)

// RegisterSuperAdminCommand is the first-run setup of the platform operator.
type RegisterSuperAdminCommand struct { //nolint:recvcheck //using for validation
	name     string
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewRegisterSuperAdminCommand(name, email, password string) (RegisterSuperAdminCommand, error) {
	cmd := RegisterSuperAdminCommand{
		name:     strings.TrimSpace(name),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}
	if err := setEmail(&cmd.email, email); err != nil {
		return RegisterSuperAdminCommand{}, err
	}
	return cmd, nil
}

func (c RegisterSuperAdminCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSuperAdminCommandIsNotConstructed)
}

func (c RegisterSuperAdminCommand) Name() string     { return c.name }
func (c RegisterSuperAdminCommand) Email() string    { return c.email }
func (c RegisterSuperAdminCommand) Password() string { return c.password }
