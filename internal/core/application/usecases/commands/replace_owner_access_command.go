package commands

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrReplaceOwnerAccessCommandIsNotConstructed = errors.New(
	"ReplaceOwnerAccessCommand must be created via NewReplaceOwnerAccessCommand constructor",
)

// ReplaceOwnerAccessCommand hands a tenant over to a new owner login. The
// previous owner's access record is removed; their auth subject is kept.
type ReplaceOwnerAccessCommand struct { //nolint:recvcheck //using for validation
	previousUID string
	owner       RegisterStaffCommand

	guard guard.ConstructorGuard
}

func NewReplaceOwnerAccessCommand(tenantID, previousUID, name, email, password string) (ReplaceOwnerAccessCommand, error) {
	previousUID = strings.TrimSpace(previousUID)
	if previousUID == "" {
		return ReplaceOwnerAccessCommand{}, errs.NewValueIsRequiredError("previousUID")
	}

	owner, err := NewRegisterOwnerCommand(tenantID, name, email, password)
	if err != nil {
		return ReplaceOwnerAccessCommand{}, err
	}

	return ReplaceOwnerAccessCommand{
		previousUID: previousUID,
		owner:       owner,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReplaceOwnerAccessCommand) Validate() error {
	return c.guard.Validate(ErrReplaceOwnerAccessCommandIsNotConstructed)
}

func (c ReplaceOwnerAccessCommand) PreviousUID() string         { return c.previousUID }
func (c ReplaceOwnerAccessCommand) Owner() RegisterStaffCommand { return c.owner }
