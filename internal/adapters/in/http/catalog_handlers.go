package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	ID   *kernel.UUID `json:"id"`
	Name string       `json:"name"`
}

type productRequest struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available *catalog.Flag   `json:"available"`
}

// available defaults to true when the client leaves the flag out.
func (r productRequest) available() bool {
	if r.Available == nil {
		return true
	}
	return bool(*r.Available)
}

func (s *Server) ListCategories(c echo.Context) error {
	q, err := queries.NewListCategoriesQuery(TenantOf(c))
	if err != nil {
		return err
	}
	res, err := s.query.ListCategories.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) StreamCategories(c echo.Context) error {
	q, err := queries.NewListCategoriesQuery(TenantOf(c))
	if err != nil {
		return err
	}
	return streamLive(s, c, ports.CatalogTopic, TenantOf(c), loader(s.query.ListCategories.Handle, q))
}

func (s *Server) SaveCategory(c echo.Context) error {
	body, err := bind[categoryRequest](c)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		id = *body.ID
	}

	cmd, err := commands.NewSaveCategoryCommand(id, TenantOf(c), body.Name)
	if err != nil {
		return err
	}
	if err = s.cmd.SaveCategory.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

func (s *Server) DeleteCategory(c echo.Context) error {
	return s.deleteCatalogEntry(c, commands.NewDeleteCategoryCommand)
}

func (s *Server) ListProducts(c echo.Context) error {
	return s.listProducts(c, queries.NewListProductsQuery)
}

func (s *Server) StreamProducts(c echo.Context) error {
	return s.streamProducts(c, queries.NewListProductsQuery)
}

// GetMenu lists the products that can be ordered.
func (s *Server) GetMenu(c echo.Context) error {
	return s.listProducts(c, queries.NewGetMenuQuery)
}

func (s *Server) StreamMenu(c echo.Context) error {
	return s.streamProducts(c, queries.NewGetMenuQuery)
}

func (s *Server) listProducts(c echo.Context, build func(string) (queries.ListProductsQuery, error)) error {
	q, err := build(TenantOf(c))
	if err != nil {
		return err
	}
	res, err := s.query.ListProducts.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) streamProducts(c echo.Context, build func(string) (queries.ListProductsQuery, error)) error {
	q, err := build(TenantOf(c))
	if err != nil {
		return err
	}
	return streamLive(s, c, ports.CatalogTopic, TenantOf(c), loader(s.query.ListProducts.Handle, q))
}

func (s *Server) CreateProduct(c echo.Context) error {
	body, err := bind[productRequest](c)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(id, TenantOf(c), body.Name, body.Price, body.Category, body.available())
	if err != nil {
		return err
	}
	if err = s.cmd.SaveProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	body, err := bind[productRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProductCommand(id, TenantOf(c), body.Name, body.Price, body.Category, body.available())
	if err != nil {
		return err
	}
	if err = s.cmd.SaveProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteProduct(c echo.Context) error {
	return s.deleteCatalogEntry(c, commands.NewDeleteProductCommand)
}

func (s *Server) deleteCatalogEntry(
	c echo.Context,
	build func(tenantID string, id kernel.UUID) (commands.DeleteCatalogEntryCommand, error),
) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := build(TenantOf(c), id)
	if err != nil {
		return err
	}
	if err = s.cmd.DeleteCatalogEntry.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
