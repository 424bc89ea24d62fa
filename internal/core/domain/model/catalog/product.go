// Package catalog holds the menu of a tenant: categories and products.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a menu entry. Only available products appear on the menu.
type Product struct {
	id        kernel.UUID
	tenantID  string
	name      string
	price     decimal.Decimal
	category  string
	available bool

	isConstructed bool
}

func NewProduct(
	id kernel.UUID,
	tenantID, name string,
	price decimal.Decimal,
	category string,
	available bool,
) (*Product, error) {
	p := &Product{
		category:      strings.TrimSpace(category),
		available:     available,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTenantID(tenantID),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID        { return p.id }
func (p *Product) TenantID() string       { return p.tenantID }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Category() string       { return p.category }
func (p *Product) Available() bool        { return p.available }

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setTenantID(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	p.tenantID = strings.TrimSpace(tenantID)
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	p.price = price
	return nil
}

// Flag is the availability switch as sent by admin forms: true and "true" mean
// available, anything else means unavailable.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("true")) {
		*f = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == "true" {
		*f = true
		return nil
	}
	*f = false
	return nil
}
