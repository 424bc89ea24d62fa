package queries

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/analytics"
	"restaurant/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GetAnalyticsQueryHandler struct {
	db *gorm.DB
}

func NewGetAnalyticsQueryHandler(db *gorm.DB) GetAnalyticsQueryHandler {
	return GetAnalyticsQueryHandler{db: db}
}

// Handle returns the aggregates dated on or after the query's day in date
// order, each with both counter maps filled.
func (h GetAnalyticsQueryHandler) Handle(ctx context.Context, query GetAnalyticsQuery) ([]analytics.DailyAggregate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	from := query.from.StartIn(time.UTC)

	rows, err := db.Raw(`
		SELECT
			id,
			tenant_id,
			"date",
			total_revenue,
			order_count,
			last_updated
		FROM daily_aggregates
		WHERE tenant_id = ? AND "date" >= ?
		ORDER BY "date"
	`, query.tenantID, from).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]analytics.DailyAggregate, 0)
	index := make(map[string]int)
	for rows.Next() {
		var day analytics.DailyAggregate
		var date time.Time

		if err = rows.Scan(&day.ID, &day.TenantID, &date, &day.TotalRevenue, &day.OrderCount, &day.LastUpdated); err != nil {
			return nil, err
		}

		day.Date = kernel.DateOf(date, time.UTC)
		day.Categories = make(map[string]int)
		day.Products = make(map[string]int)
		index[day.ID] = len(days)
		days = append(days, day)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return days, nil
	}

	counters, err := db.Raw(`
		SELECT
			c.aggregate_id,
			c.kind,
			c.key,
			c.count
		FROM aggregate_counters c
		JOIN daily_aggregates d ON d.id = c.aggregate_id
		WHERE d.tenant_id = ? AND d."date" >= ?
	`, query.tenantID, from).Rows()
	if err != nil {
		return nil, err
	}
	defer counters.Close()

	for counters.Next() {
		var aggregateID string
		var c analytics.Counter

		if err = counters.Scan(&aggregateID, &c.Kind, &c.Key, &c.Count); err != nil {
			return nil, err
		}

		if i, ok := index[aggregateID]; ok {
			days[i].AddCounter(c)
		}
	}

	if err = counters.Err(); err != nil {
		return nil, err
	}

	return days, nil
}
