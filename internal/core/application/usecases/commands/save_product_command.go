package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSaveProductCommandIsNotConstructed = errors.New(
	"SaveProductCommand must be created via NewCreateProductCommand or NewUpdateProductCommand",
)

// SaveProductCommand creates or replaces a product.
type SaveProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	isNew     bool
	tenantID  string
	name      string
	price     decimal.Decimal
	category  string
	available bool

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	tenantID, name string,
	price decimal.Decimal,
	category string,
	available bool,
) (SaveProductCommand, error) {
	return newSaveProductCommand(productID, true, tenantID, name, price, category, available)
}

func NewUpdateProductCommand(
	productID kernel.UUID,
	tenantID, name string,
	price decimal.Decimal,
	category string,
	available bool,
) (SaveProductCommand, error) {
	return newSaveProductCommand(productID, false, tenantID, name, price, category, available)
}

func newSaveProductCommand(
	productID kernel.UUID,
	isNew bool,
	tenantID, name string,
	price decimal.Decimal,
	category string,
	available bool,
) (SaveProductCommand, error) {
	cmd := SaveProductCommand{
		productID: productID,
		isNew:     isNew,
		name:      strings.TrimSpace(name),
		price:     price,
		category:  strings.TrimSpace(category),
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	var nameErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(productID.Validate(), setTenant(&cmd.tenantID, tenantID), nameErr); err != nil {
		return SaveProductCommand{}, err
	}

	return cmd, nil
}

func (c SaveProductCommand) Validate() error {
	return c.guard.Validate(ErrSaveProductCommandIsNotConstructed)
}

func (c SaveProductCommand) ProductID() kernel.UUID { return c.productID }
func (c SaveProductCommand) IsNew() bool            { return c.isNew }
func (c SaveProductCommand) TenantID() string       { return c.tenantID }
func (c SaveProductCommand) Name() string           { return c.name }
func (c SaveProductCommand) Price() decimal.Decimal { return c.price }
func (c SaveProductCommand) Category() string       { return c.category }
func (c SaveProductCommand) Available() bool        { return c.available }
