package order

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one line of an order. Name and category are free text typed by
// staff; analytics sanitises them before using them as counter keys.
type Item struct {
	name     string
	category string
	qty      int
	price    decimal.Decimal
}

// NewItem builds an order line. Quantity must be positive and price must not be
// negative.
func NewItem(name, category string, qty int, price decimal.Decimal) (Item, error) {
	item := Item{
		name:     strings.TrimSpace(name),
		category: strings.TrimSpace(category),
	}

	if err := errors.Join(
		item.setQty(qty),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Name returns the product name as typed.
func (i Item) Name() string {
	return i.name
}

// Category returns the category as typed; it may be empty.
func (i Item) Category() string {
	return i.category
}

func (i Item) Qty() int {
	return i.qty
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

// Subtotal is price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.qty)))
}

func (i *Item) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", qty))
	}
	i.qty = qty
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
