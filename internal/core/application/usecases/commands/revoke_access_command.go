package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRevokeAccessCommandIsNotConstructed = errors.New(
	"RevokeAccessCommand must be created via NewRevokeAccessCommand constructor",
)

// RevokeAccessCommand deletes the access record of a tenant member holding
// role. It backs both "delete employee" and "unlink owner".
type RevokeAccessCommand struct { //nolint:recvcheck //using for validation
	tenantID string
	uid      string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewRevokeAccessCommand(tenantID, uid string, role user.Role) (RevokeAccessCommand, error) {
	cmd := RevokeAccessCommand{
		uid:   strings.TrimSpace(uid),
		role:  role,
		guard: guard.NewConstructorGuard(),
	}

	var uidErr, roleErr error
	if cmd.uid == "" {
		uidErr = errs.NewValueIsRequiredError("uid")
	}
	if !role.BindsTenant() {
		roleErr = errs.NewValueIsInvalidError("role")
	}

	if err := errors.Join(setTenant(&cmd.tenantID, tenantID), uidErr, roleErr); err != nil {
		return RevokeAccessCommand{}, err
	}

	return cmd, nil
}

func NewDeleteEmployeeCommand(tenantID, uid string) (RevokeAccessCommand, error) {
	return NewRevokeAccessCommand(tenantID, uid, user.Employee)
}

func NewUnlinkOwnerCommand(tenantID, uid string) (RevokeAccessCommand, error) {
	return NewRevokeAccessCommand(tenantID, uid, user.Owner)
}

func (c RevokeAccessCommand) Validate() error {
	return c.guard.Validate(ErrRevokeAccessCommandIsNotConstructed)
}

func (c RevokeAccessCommand) TenantID() string { return c.tenantID }
func (c RevokeAccessCommand) UID() string      { return c.uid }
func (c RevokeAccessCommand) Role() user.Role  { return c.role }
