// Package analytics folds paid orders into one aggregate per tenant per day.
//
// Aggregates are never rewritten wholesale. A paid order produces a Delta and
// the store applies it with server-side increments, so concurrent payments on
// the same day never lose an update.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CounterKind names one of the two counter maps of an aggregate.
type CounterKind string

const (
	CategoryCounter CounterKind = "category"
	ProductCounter  CounterKind = "product"
)

// AggregateID is the storage key of a tenant's day, e.g. "t1_2024-01-05".
func AggregateID(tenantID string, date kernel.Date) string {
	return fmt.Sprintf("%s_%s", tenantID, date)
}

// Delta is the increment a single paid order applies to its day.
type Delta struct {
	id         string
	tenantID   string
	date       kernel.Date
	revenue    decimal.Decimal
	orderCount int
	categories map[string]int
	products   map[string]int
	appliedAt  time.Time
}

// NewDelta derives the increment for o landing on date. Line quantities are
// summed per sanitised key, so two lines of the same product add up.
func NewDelta(o *order.Order, date kernel.Date, appliedAt time.Time) (Delta, error) {
	if err := errors.Join(o.Validate(), date.Validate()); err != nil {
		return Delta{}, err
	}
	if !o.Status().IsSale() {
		return Delta{}, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s order is not a sale", o.Status()))
	}

	d := Delta{
		id:         AggregateID(o.TenantID(), date),
		tenantID:   o.TenantID(),
		date:       date,
		revenue:    o.TotalAmount(),
		orderCount: 1,
		categories: make(map[string]int),
		products:   make(map[string]int),
		appliedAt:  appliedAt,
	}

	for _, item := range o.Items() {
		d.categories[SanitizeCategory(item.Category())] += item.Qty()
		d.products[SanitizeProduct(item.Name())] += item.Qty()
	}

	return d, nil
}

func (d Delta) AggregateID() string      { return d.id }
func (d Delta) TenantID() string         { return d.tenantID }
func (d Delta) Date() kernel.Date        { return d.date }
func (d Delta) Revenue() decimal.Decimal { return d.revenue }
func (d Delta) OrderCount() int          { return d.orderCount }
func (d Delta) AppliedAt() time.Time     { return d.appliedAt }

// Counters returns the increments of one kind sorted by key, so concurrent
// upserts touch counter rows in the same order.
func (d Delta) Counters(kind CounterKind) []Counter {
	src := d.categories
	if kind == ProductCounter {
		src = d.products
	}

	counters := make([]Counter, 0, len(src))
	for key, n := range src {
		counters = append(counters, Counter{Kind: kind, Key: key, Count: n})
	}
	sort.Slice(counters, func(i, j int) bool { return counters[i].Key < counters[j].Key })
	return counters
}

// Counter is one entry of a counter map.
type Counter struct {
	Kind  CounterKind
	Key   string
	Count int
}

// DailyAggregate is the read model of a tenant's day.
type DailyAggregate struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	Date         kernel.Date     `json:"date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int             `json:"order_count"`
	Categories   map[string]int  `json:"categories"`
	Products     map[string]int  `json:"products"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// AddCounter places a stored counter row into the right map.
func (a *DailyAggregate) AddCounter(c Counter) {
	switch c.Kind {
	case CategoryCounter:
		if a.Categories == nil {
			a.Categories = make(map[string]int)
		}
		a.Categories[c.Key] += c.Count
	case ProductCounter:
		if a.Products == nil {
			a.Products = make(map[string]int)
		}
		a.Products[c.Key] += c.Count
	}
}
