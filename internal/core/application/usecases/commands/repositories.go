// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, and commits or
// rolls back as one step. Handlers depend on the narrowest unit of work that
// covers the repositories they touch.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	AggregateRepoFactory interface {
		AggregateRepository() ports.AggregateRepository
	}

	CategoryRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW is used by the order lifecycle commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AnalyticsUoW locks an order and increments its day's aggregate in one
	// transaction.
	AnalyticsUoW interface {
		TxManager
		OrderRepoFactory
		AggregateRepoFactory
	}

	AnalyticsUoWFactory interface {
		Create() AnalyticsUoW
	}

	// MaintenanceUoW is used by the retention sweep.
	MaintenanceUoW interface {
		TxManager
		TenantRepoFactory
		OrderRepoFactory
		AggregateRepoFactory
	}

	MaintenanceUoWFactory interface {
		Create() MaintenanceUoW
	}

	TenantUoW interface {
		TxManager
		TenantRepoFactory
	}

	TenantUoWFactory interface {
		Create() TenantUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	CatalogUoW interface {
		TxManager
		CategoryRepoFactory
		ProductRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW spans every repository. Only tenant wipes need it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   users := uow.UserRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		TenantRepoFactory
		UserRepoFactory
		AggregateRepoFactory
		CategoryRepoFactory
		ProductRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// BatchSize is the page size of batched deletes.
const BatchSize = 400
