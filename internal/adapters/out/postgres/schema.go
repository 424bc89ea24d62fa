package postgres

import (
	"restaurant/internal/adapters/out/postgres/aggregaterepo"
	"restaurant/internal/adapters/out/postgres/catalogrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tenantrepo"
	"restaurant/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table of the store in creation order.
func Models() []any {
	return []any{
		&tenantrepo.TenantDTO{},
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&aggregaterepo.DailyAggregateDTO{},
		&aggregaterepo.AggregateCounterDTO{},
		&catalogrepo.CategoryDTO{},
		&catalogrepo.ProductDTO{},
	}
}

// Migrate creates or updates the schema. Extra models, such as the local
// auth credentials, are migrated in the same call.
func Migrate(db *gorm.DB, extra ...any) error {
	return db.AutoMigrate(append(Models(), extra...)...)
}

// Truncate empties every table of the store. Tests use it between cases.
func Truncate(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE aggregate_counters, daily_aggregates, orders, products, categories, users, tenants`).Error
}
