// Package aggregaterepo persists daily aggregates. Counter maps live in a
// child table with one row per (aggregate, kind, key) so every counter can be
// incremented server-side.
package aggregaterepo

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyAggregateDTO is the daily_aggregates row.
type DailyAggregateDTO struct {
	ID           string                `gorm:"primaryKey"`
	TenantID     string                `gorm:"not null;index:idx_daily_aggregates_tenant_date,priority:1"`
	Date         time.Time             `gorm:"type:date;not null;index:idx_daily_aggregates_tenant_date,priority:2"`
	TotalRevenue decimal.Decimal       `gorm:"type:numeric(14,2);not null;default:0"`
	OrderCount   int                   `gorm:"not null;default:0"`
	LastUpdated  time.Time             `gorm:"not null"`
	Counters     []AggregateCounterDTO `gorm:"foreignKey:AggregateID;constraint:OnDelete:CASCADE"`
}

func (DailyAggregateDTO) TableName() string {
	return "daily_aggregates"
}

// AggregateCounterDTO is one entry of a category or product counter map.
type AggregateCounterDTO struct {
	AggregateID string `gorm:"primaryKey"`
	Kind        string `gorm:"primaryKey"`
	Key         string `gorm:"primaryKey"`
	Count       int    `gorm:"not null"`
}

func (AggregateCounterDTO) TableName() string {
	return "aggregate_counters"
}
