package aggregaterepo

import (
	"context"
	"time"

	"restaurant/internal/adapters/out/postgres/batch"
	"restaurant/internal/core/domain/model/analytics"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAggregateRepository implements ports.AggregateRepository using GORM.
type GormAggregateRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

type changeTracker interface {
	TrackChange(topic ports.Topic, tenantID string)
}

func NewGormAggregateRepository(db *gorm.DB, tracker changeTracker) *GormAggregateRepository {
	return &GormAggregateRepository{db: db, tracker: tracker}
}

// ApplyDelta upserts the day row and each counter row with
// INSERT ... ON CONFLICT DO UPDATE SET col = col + EXCLUDED.col. Counter rows
// are written in key order.
func (r *GormAggregateRepository) ApplyDelta(ctx context.Context, delta analytics.Delta) error {
	db := r.db.WithContext(ctx)

	day := DailyAggregateDTO{
		ID:           delta.AggregateID(),
		TenantID:     delta.TenantID(),
		Date:         delta.Date().StartIn(time.UTC),
		TotalRevenue: delta.Revenue(),
		OrderCount:   delta.OrderCount(),
		LastUpdated:  delta.AppliedAt(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_revenue": gorm.Expr("daily_aggregates.total_revenue + EXCLUDED.total_revenue"),
			"order_count":   gorm.Expr("daily_aggregates.order_count + EXCLUDED.order_count"),
			"last_updated":  gorm.Expr("EXCLUDED.last_updated"),
		}),
	}).Omit(clause.Associations).Create(&day).Error
	if err != nil {
		return err
	}

	counters := make([]AggregateCounterDTO, 0)
	for _, kind := range []analytics.CounterKind{analytics.CategoryCounter, analytics.ProductCounter} {
		for _, c := range delta.Counters(kind) {
			counters = append(counters, AggregateCounterDTO{
				AggregateID: day.ID,
				Kind:        string(c.Kind),
				Key:         c.Key,
				Count:       c.Count,
			})
		}
	}

	if len(counters) > 0 {
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "aggregate_id"}, {Name: "kind"}, {Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count": gorm.Expr("aggregate_counters.count + EXCLUDED.count"),
			}),
		}).Create(&counters).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackChange(ports.AggregatesTopic, delta.TenantID())
	return nil
}

// DeleteDatedBefore relies on the cascading foreign key to drop counters.
func (r *GormAggregateRepository) DeleteDatedBefore(
	ctx context.Context,
	tenantID string,
	cutoff kernel.Date,
	limit int,
) (int, error) {
	if err := cutoff.Validate(); err != nil {
		return 0, err
	}

	return r.deletePage(ctx, tenantID, limit, r.db.
		Model(&DailyAggregateDTO{}).
		Select("id").
		Where(`tenant_id = ? AND "date" < ?`, tenantID, cutoff.StartIn(time.UTC)).
		Order(`"date"`).
		Limit(limit))
}

func (r *GormAggregateRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	return r.deletePage(ctx, tenantID, limit, r.db.
		Model(&DailyAggregateDTO{}).
		Select("id").
		Where("tenant_id = ?", tenantID).
		Limit(limit))
}

func (r *GormAggregateRepository) deletePage(ctx context.Context, tenantID string, limit int, page *gorm.DB) (int, error) {
	if err := batch.CheckLimit(limit); err != nil {
		return 0, err
	}

	n, err := batch.Delete(ctx, r.db, &DailyAggregateDTO{}, page)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		r.tracker.TrackChange(ports.AggregatesTopic, tenantID)
	}
	return n, nil
}
