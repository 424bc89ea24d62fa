package ports

import (
	"context"
)

// Topic is a family of records whose changes can be watched.
type Topic string

const (
	TenantsTopic    Topic = "tenants"
	OrdersTopic     Topic = "orders"
	AggregatesTopic Topic = "daily_aggregates"
	CatalogTopic    Topic = "catalog"
)

// Topics lists every topic the store publishes.
func Topics() []Topic {
	return []Topic{TenantsTopic, OrdersTopic, AggregatesTopic, CatalogTopic}
}

// ChangeEvent tells a subscriber that records of its topic and tenant may have
// changed. Err is set when the feed lost its connection; the subscriber
// should treat its data as possibly stale. Events carry no data: subscribers
// reload the full result set.
type ChangeEvent struct {
	Topic    Topic
	TenantID string
	Err      error
}

// ChangeFeed delivers change events per (topic, tenant). The returned channel
// is closed once ctx is done.
type ChangeFeed interface {
	Subscribe(ctx context.Context, topic Topic, tenantID string) (<-chan ChangeEvent, error)
}
