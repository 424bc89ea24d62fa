// Package tenant models a restaurant account: the unit of data isolation and the
// record the access gate watches.
package tenant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// DefaultRetentionDays applies when a tenant has no usable retention value.
	DefaultRetentionDays = 30
	MaxRetentionDays     = 3650
)

var (
	ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant constructor")

	slugPattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	maxServiceFee = decimal.NewFromInt(100)
)

// Tenant is one restaurant. Active gates every role; IsOpen gates employees
// only.
type Tenant struct {
	id                string
	name              string
	active            bool
	isOpen            *bool
	retentionDays     int
	serviceFeePercent decimal.Decimal
	createdAt         time.Time

	isConstructed bool
}

// NewTenant provisions an active tenant keyed by slug with no service fee. A
// retention of zero selects the default.
func NewTenant(slug, name string, retentionDays int, createdAt time.Time) (*Tenant, error) {
	t := &Tenant{
		active:            true,
		serviceFeePercent: decimal.Zero,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if retentionDays == 0 {
		retentionDays = DefaultRetentionDays
	}

	if err := errors.Join(
		t.setID(slug),
		t.setName(name),
		t.SetRetentionDays(retentionDays),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTenant rebuilds a stored tenant. Legacy records may carry a nil
// isOpen and a zero retention; both are kept as stored.
func RestoreTenant(
	id, name string,
	active bool,
	isOpen *bool,
	retentionDays int,
	serviceFeePercent decimal.Decimal,
	createdAt time.Time,
) (*Tenant, error) {
	t := &Tenant{
		name:              name,
		active:            active,
		isOpen:            isOpen,
		retentionDays:     retentionDays,
		serviceFeePercent: serviceFeePercent,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if err := t.setID(id); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tenant) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenantIsNotConstructed
	}
	return nil
}

func (t *Tenant) ID() string {
	return t.id
}

func (t *Tenant) Name() string {
	return t.name
}

func (t *Tenant) Active() bool {
	return t.active
}

// IsOpen returns the stored operating flag; nil means it was never set.
func (t *Tenant) IsOpen() *bool {
	return t.isOpen
}

// OperationOpen treats a missing operating flag as open so tenants created
// before the flag existed are not locked out.
func (t *Tenant) OperationOpen() bool {
	return t.isOpen == nil || *t.isOpen
}

// RetentionDays returns the stored value, which may be zero on legacy records.
func (t *Tenant) RetentionDays() int {
	return t.retentionDays
}

// EffectiveRetentionDays is the retention the sweeper applies.
func (t *Tenant) EffectiveRetentionDays() int {
	return EffectiveRetention(t.retentionDays)
}

func (t *Tenant) ServiceFeePercent() decimal.Decimal {
	return t.serviceFeePercent
}

func (t *Tenant) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tenant) SetActive(active bool) {
	t.active = active
}

func (t *Tenant) SetOpen(open bool) {
	t.isOpen = &open
}

// SetRetentionDays accepts 1 to MaxRetentionDays.
func (t *Tenant) SetRetentionDays(days int) error {
	if days < 1 || days > MaxRetentionDays {
		return errs.NewValueIsOutOfRangeError("retention_days", days, 1, MaxRetentionDays)
	}
	t.retentionDays = days
	return nil
}

// SetServiceFeePercent accepts 0 to 100.
func (t *Tenant) SetServiceFeePercent(fee decimal.Decimal) error {
	if fee.IsNegative() || fee.GreaterThan(maxServiceFee) {
		return errs.NewValueIsOutOfRangeError("service_fee_percent", fee, 0, 100)
	}
	t.serviceFeePercent = fee
	return nil
}

// EffectiveRetention maps a stored retention to the one the sweeper uses:
// zero or negative values fall back to DefaultRetentionDays.
func EffectiveRetention(days int) int {
	if days <= 0 {
		return DefaultRetentionDays
	}
	return days
}

func (t *Tenant) setID(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	if !slugPattern.MatchString(slug) {
		return errs.NewValueIsInvalidErrorWithCause("tenant_id", fmt.Errorf("%q must be lowercase letters, digits, '_' or '-'", slug))
	}
	t.id = slug
	return nil
}

func (t *Tenant) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	t.name = name
	return nil
}
