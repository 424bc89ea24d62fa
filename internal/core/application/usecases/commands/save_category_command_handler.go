package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/pkg/errs"
)

type SaveCategoryCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSaveCategoryCommandHandler(uowFactory CatalogUoWFactory) SaveCategoryCommandHandler {
	return SaveCategoryCommandHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrValueIsInvalid when the tenant already has a
// category of that name.
func (h *SaveCategoryCommandHandler) Handle(ctx context.Context, cmd SaveCategoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := catalog.NewCategory(cmd.CategoryID(), cmd.TenantID(), cmd.Name())
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

	repo := uow.CategoryRepository()
	exists, err := repo.ExistsByName(ctx, c.TenantID(), c.Name())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("category %q already exists", c.Name()))
	}

	if err = repo.Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
