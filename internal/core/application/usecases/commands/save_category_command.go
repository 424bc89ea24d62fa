package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrSaveCategoryCommandIsNotConstructed = errors.New(
	"SaveCategoryCommand must be created via NewSaveCategoryCommand constructor",
)

type SaveCategoryCommand struct { //nolint:recvcheck //using for validation
	categoryID kernel.UUID
	tenantID   string
	name       string

	guard guard.ConstructorGuard
}

// NewSaveCategoryCommand normalises the name the way categories are stored.
func NewSaveCategoryCommand(categoryID kernel.UUID, tenantID, name string) (SaveCategoryCommand, error) {
	cmd := SaveCategoryCommand{
		categoryID: categoryID,
		name:       catalog.NormalizeCategoryName(name),
		guard:      guard.NewConstructorGuard(),
	}

	var nameErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(categoryID.Validate(), setTenant(&cmd.tenantID, tenantID), nameErr); err != nil {
		return SaveCategoryCommand{}, err
	}

	return cmd, nil
}

func (c SaveCategoryCommand) Validate() error {
	return c.guard.Validate(ErrSaveCategoryCommandIsNotConstructed)
}

func (c SaveCategoryCommand) CategoryID() kernel.UUID { return c.categoryID }
func (c SaveCategoryCommand) TenantID() string        { return c.tenantID }
func (c SaveCategoryCommand) Name() string            { return c.name }
