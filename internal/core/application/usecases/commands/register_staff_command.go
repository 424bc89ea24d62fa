package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRegisterStaffCommandIsNotConstructed = errors.New(
	"RegisterStaffCommand must be created via NewRegisterOwnerCommand or NewRegisterEmployeeCommand",
)

// RegisterStaffCommand creates login credentials and the access record of an
// owner or employee.
type RegisterStaffCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	role     user.Role
	name     string
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewRegisterOwnerCommand(tenantID, name, email, password string) (RegisterStaffCommand, error) {
	return newRegisterStaffCommand(tenantID, user.Owner, name, email, password)
}

func NewRegisterEmployeeCommand(tenantID, name, email, password string) (RegisterStaffCommand, error) {
	return newRegisterStaffCommand(tenantID, user.Employee, name, email, password)
}

func newRegisterStaffCommand(tenantID string, role user.Role, name, email, password string) (RegisterStaffCommand, error) {
	cmd := RegisterStaffCommand{
		role:     role,
		name:     strings.TrimSpace(name),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setTenant(&cmd.tenantID, tenantID),
		setEmail(&cmd.email, email),
	); err != nil {
		return RegisterStaffCommand{}, err
	}

	return cmd, nil
}

func (c RegisterStaffCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStaffCommandIsNotConstructed)
}

func (c RegisterStaffCommand) TenantID() string { return c.tenantID }
func (c RegisterStaffCommand) Role() user.Role  { return c.role }
func (c RegisterStaffCommand) Name() string     { return c.name }
func (c RegisterStaffCommand) Email() string    { return c.email }
func (c RegisterStaffCommand) Password() string { return c.password }

func setEmail(dst *string, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	*dst = email
	return nil
}
