// Package postgres provides the GORM-based Unit of Work and the schema of the
// store.
//
// Repositories report every topic and tenant they wrote to. On Commit the unit
// of work issues one pg_notify per distinct (topic, tenant) inside the
// transaction, so PostgreSQL delivers the notifications only if the writes
// commit. Writes made without Begin are not announced.
//
//	factory := postgres.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"fmt"

	"restaurant/internal/adapters/out/postgres/aggregaterepo"
	"restaurant/internal/adapters/out/postgres/catalogrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tenantrepo"
	"restaurant/internal/adapters/out/postgres/userrepo"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// trackedChange is one (topic, tenant) pair written during the unit of work.
type trackedChange struct {
	topic    ports.Topic
	tenantID string
}

// GormUnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork is not safe for concurrent use; every goroutine creates its
// own.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	changes []trackedChange
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.changes = nil
	return nil
}

// Commit announces the tracked changes and commits. A failed notification
// rolls the transaction back.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	changes := uow.changes
	uow.changes = nil

	for _, c := range changes {
		if err := tx.Exec("SELECT pg_notify(?, ?)", string(c.topic), c.tenantID).Error; err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("notify %s for %s: %w", c.topic, c.tenantID, err)
		}
	}

	return tx.Commit().Error
}

// Rollback returns gorm.ErrInvalidTransaction once the transaction is closed,
// which handlers deferring it ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

// TrackChange records that topic changed for tenantID. It is called by the
// repositories and only has an effect inside a transaction.
func (uow *GormUnitOfWork) TrackChange(topic ports.Topic, tenantID string) {
	if uow.tx == nil {
		return
	}
	for _, c := range uow.changes {
		if c.topic == topic && c.tenantID == tenantID {
			return
		}
	}
	uow.changes = append(uow.changes, trackedChange{topic: topic, tenantID: tenantID})
}

// TrackedChanges returns the pending notifications of the open transaction.
func (uow *GormUnitOfWork) TrackedChanges() []ports.ChangeEvent {
	events := make([]ports.ChangeEvent, 0, len(uow.changes))
	for _, c := range uow.changes {
		events = append(events, ports.ChangeEvent{Topic: c.topic, TenantID: c.tenantID})
	}
	return events
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TenantRepository() ports.TenantRepository {
	return tenantrepo.NewGormTenantRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) AggregateRepository() ports.AggregateRepository {
	return aggregaterepo.NewGormAggregateRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return catalogrepo.NewGormCategoryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return catalogrepo.NewGormProductRepository(uow.conn(), uow)
}
