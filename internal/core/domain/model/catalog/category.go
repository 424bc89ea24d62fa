package catalog

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

// Category groups products on the menu. Names are stored trimmed and lowercased
// and are unique within a tenant.
type Category struct {
	id       kernel.UUID
	tenantID string
	name     string

	isConstructed bool
}

// NormalizeCategoryName is the stored form of a category name.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NewCategory(id kernel.UUID, tenantID, name string) (*Category, error) {
	c := &Category{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Category) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCategoryIsNotConstructed
	}
	return nil
}

func (c *Category) ID() kernel.UUID  { return c.id }
func (c *Category) TenantID() string { return c.tenantID }
func (c *Category) Name() string     { return c.name }

func (c *Category) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Category) setTenantID(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	c.tenantID = strings.TrimSpace(tenantID)
	return nil
}

func (c *Category) setName(name string) error {
	name = NormalizeCategoryName(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
