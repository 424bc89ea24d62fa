package commands

import (
	"context"
)

// DeleteCatalogEntryCommandHandler deletes a category or a product. Products
// of a deleted category keep their category text.
type DeleteCatalogEntryCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteCatalogEntryCommandHandler(uowFactory CatalogUoWFactory) DeleteCatalogEntryCommandHandler {
	return DeleteCatalogEntryCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteCatalogEntryCommandHandler) Handle(ctx context.Context, cmd DeleteCatalogEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var err error
	switch cmd.Entry() {
	case CategoryEntry:
		err = uow.CategoryRepository().Delete(ctx, cmd.TenantID(), cmd.ID())
	case ProductEntry:
		err = uow.ProductRepository().Delete(ctx, cmd.TenantID(), cmd.ID())
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
