package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetAnalyticsQueryIsNotConstructed = errors.New(
	"GetAnalyticsQuery must be created via NewGetAnalyticsQuery constructor",
)

// GetAnalyticsQuery reads the daily aggregates of a tenant from a day on.
type GetAnalyticsQuery struct {
	tenantID string
	from     kernel.Date

	guard guard.ConstructorGuard
}

func NewGetAnalyticsQuery(tenantID string, from kernel.Date) (GetAnalyticsQuery, error) {
	q := GetAnalyticsQuery{from: from, guard: guard.NewConstructorGuard()}
	if err := errors.Join(requireTenant(&q.tenantID, tenantID), from.Validate()); err != nil {
		return GetAnalyticsQuery{}, err
	}
	return q, nil
}

func (q GetAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetAnalyticsQueryIsNotConstructed)
}

func (q GetAnalyticsQuery) TenantID() string  { return q.tenantID }
func (q GetAnalyticsQuery) From() kernel.Date { return q.from }
