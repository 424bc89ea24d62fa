package commands_test

import (
	"context"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/analytics"
	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, tenantID string, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteCreatedBefore(ctx context.Context, tenantID string, cutoff time.Time, limit int) (int, error) {
	args := m.Called(ctx, tenantID, cutoff, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Int(0), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Add(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, uid string) (*user.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ListByTenantAndRole(ctx context.Context, tenantID string, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockUserRepository) DeleteByTenant(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockAggregateRepository struct{ mock.Mock }

func (m *MockAggregateRepository) ApplyDelta(ctx context.Context, delta analytics.Delta) error {
	return m.Called(ctx, delta).Error(0)
}

func (m *MockAggregateRepository) DeleteDatedBefore(ctx context.Context, tenantID string, cutoff kernel.Date, limit int) (int, error) {
	args := m.Called(ctx, tenantID, cutoff, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockAggregateRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Int(0), args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Add(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, tenantID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tenantID string, id kernel.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockCategoryRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID string, id kernel.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockProductRepository) DeleteByTenant(ctx context.Context, tenantID string, limit int) (int, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Int(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TenantRepository() ports.TenantRepository {
	return m.Called().Get(0).(ports.TenantRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) AggregateRepository() ports.AggregateRepository {
	return m.Called().Get(0).(ports.AggregateRepository)
}

func (m *MockUoW) CategoryRepository() ports.CategoryRepository {
	return m.Called().Get(0).(ports.CategoryRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

// MockFactory hands out UoWs; T is the narrow interface a handler needs.
type MockFactory[T any] struct{ mock.Mock }

func (m *MockFactory[T]) Create() T {
	return m.Called().Get(0).(T)
}

func orderFactory(uow *MockUoW) *MockFactory[commands.OrderUoW] {
	f := new(MockFactory[commands.OrderUoW])
	f.On("Create").Return(uow)
	return f
}

// expectTx registers Begin, Commit (when commit is true) and Rollback in
// order on uow.
func expectTx(ctx context.Context, uow *MockUoW, commit bool, middle ...*mock.Call) {
	calls := []*mock.Call{uow.On("Begin", ctx).Return(nil).Once()}
	calls = append(calls, middle...)
	if commit {
		calls = append(calls, uow.On("Commit", ctx).Return(nil).Once())
	}
	calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)
}
