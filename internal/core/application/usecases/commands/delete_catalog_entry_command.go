package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrDeleteCatalogEntryCommandIsNotConstructed = errors.New(
	"DeleteCatalogEntryCommand must be created via NewDeleteCategoryCommand or NewDeleteProductCommand",
)

// CatalogEntry is the kind of catalog record to delete.
type CatalogEntry string

const (
	CategoryEntry CatalogEntry = "category"
	ProductEntry  CatalogEntry = "product"
)

type DeleteCatalogEntryCommand struct { //nolint:recvcheck //using for validation
	entry    CatalogEntry
	tenantID string
	id       kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCategoryCommand(tenantID string, id kernel.UUID) (DeleteCatalogEntryCommand, error) {
	return newDeleteCatalogEntryCommand(CategoryEntry, tenantID, id)
}

func NewDeleteProductCommand(tenantID string, id kernel.UUID) (DeleteCatalogEntryCommand, error) {
	return newDeleteCatalogEntryCommand(ProductEntry, tenantID, id)
}

func newDeleteCatalogEntryCommand(entry CatalogEntry, tenantID string, id kernel.UUID) (DeleteCatalogEntryCommand, error) {
	cmd := DeleteCatalogEntryCommand{entry: entry, id: id, guard: guard.NewConstructorGuard()}
	if err := errors.Join(setTenant(&cmd.tenantID, tenantID), id.Validate()); err != nil {
		return DeleteCatalogEntryCommand{}, err
	}
	return cmd, nil
}

func (c DeleteCatalogEntryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogEntryCommandIsNotConstructed)
}

func (c DeleteCatalogEntryCommand) Entry() CatalogEntry { return c.entry }
func (c DeleteCatalogEntryCommand) TenantID() string    { return c.tenantID }
func (c DeleteCatalogEntryCommand) ID() kernel.UUID     { return c.id }
