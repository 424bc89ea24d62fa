package commands

import (
	"context"

	"restaurant/internal/core/domain/model/catalog"
)

type SaveProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSaveProductCommandHandler(uowFactory CatalogUoWFactory) SaveProductCommandHandler {
	return SaveProductCommandHandler{uowFactory: uowFactory}
}

// Handle adds a new product or replaces an existing one. Updating a product
// the tenant does not have fails with errs.ErrObjectNotFound.
func (h *SaveProductCommandHandler) Handle(ctx context.Context, cmd SaveProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := catalog.NewProduct(cmd.ProductID(), cmd.TenantID(), cmd.Name(), cmd.Price(), cmd.Category(), cmd.Available())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()
	if cmd.IsNew() {
		err = repo.Add(ctx, p)
	} else {
		err = repo.Update(ctx, p)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
