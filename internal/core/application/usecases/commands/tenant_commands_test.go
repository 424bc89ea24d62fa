package commands_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tenantFactory(uow *MockUoW) *MockFactory[commands.TenantUoW] {
	f := new(MockFactory[commands.TenantUoW])
	f.On("Create").Return(uow)
	return f
}

func storedTenant(t *testing.T) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.RestoreTenant("t1", "Casa", true, nil, 30, decimal.Zero, time.Now())
	require.NoError(t, err)
	return tn
}

func TestCreateTenantCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateTenantCommand(" Bistro_01 ", "Bistrô", 0)
	require.NoError(t, err)

	tenants := new(MockTenantRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, true,
		uow.On("TenantRepository").Return(tenants).Once(),
		tenants.On("Get", ctx, "bistro_01").Return(nil, errs.NewObjectNotFoundError("id", "bistro_01")).Once(),
		tenants.On("Add", ctx, mock.Anything).Return(nil).Once(),
	)

	h := commands.NewCreateTenantCommandHandler(tenantFactory(uow), fixedClock())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "bistro_01", created.ID())
	assert.True(t, created.Active())
	assert.Equal(t, tenant.DefaultRetentionDays, created.RetentionDays())
	assert.True(t, created.ServiceFeePercent().IsZero())
	tenants.AssertExpectations(t)
}

func TestCreateTenantCommandHandler_Handle_SlugTaken(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateTenantCommand("t1", "Outra", 30)

	tenants := new(MockTenantRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, false,
		uow.On("TenantRepository").Return(tenants).Once(),
		tenants.On("Get", ctx, "t1").Return(storedTenant(t), nil).Once(),
	)

	h := commands.NewCreateTenantCommandHandler(tenantFactory(uow), fixedClock())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	tenants.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestTenantSettingsCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name  string
		cmd   func() (commands.TenantSettingsCommand, error)
		check func(t *testing.T, tn *tenant.Tenant)
	}{
		{
			name: "suspend",
			cmd:  func() (commands.TenantSettingsCommand, error) { return commands.NewSetTenantActiveCommand("t1", false) },
			check: func(t *testing.T, tn *tenant.Tenant) {
				assert.False(t, tn.Active())
			},
		},
		{
			name: "close operation",
			cmd:  func() (commands.TenantSettingsCommand, error) { return commands.NewSetTenantOpenCommand("t1", false) },
			check: func(t *testing.T, tn *tenant.Tenant) {
				require.NotNil(t, tn.IsOpen())
				assert.False(t, tn.OperationOpen())
			},
		},
		{
			name: "retention",
			cmd:  func() (commands.TenantSettingsCommand, error) { return commands.NewUpdateRetentionPolicyCommand("t1", 90) },
			check: func(t *testing.T, tn *tenant.Tenant) {
				assert.Equal(t, 90, tn.RetentionDays())
			},
		},
		{
			name: "service fee",
			cmd: func() (commands.TenantSettingsCommand, error) {
				return commands.NewUpdateServiceFeeCommand("t1", decimal.NewFromInt(10))
			},
			check: func(t *testing.T, tn *tenant.Tenant) {
				assert.True(t, decimal.NewFromInt(10).Equal(tn.ServiceFeePercent()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := tt.cmd()
			require.NoError(t, err)
			tn := storedTenant(t)

			tenants := new(MockTenantRepository)
			uow := new(MockUoW)
			expectTx(ctx, uow, true,
				uow.On("TenantRepository").Return(tenants).Once(),
				tenants.On("Get", ctx, "t1").Return(tn, nil).Once(),
				tenants.On("Update", ctx, tn).Return(nil).Once(),
			)

			h := commands.NewTenantSettingsCommandHandler(tenantFactory(uow))
			require.NoError(t, h.Handle(ctx, cmd))
			tt.check(t, tn)
			tenants.AssertExpectations(t)
		})
	}
}

func TestTenantSettingsCommandHandler_Handle_OutOfRange(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateRetentionPolicyCommand("t1", 0)

	tenants := new(MockTenantRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, false,
		uow.On("TenantRepository").Return(tenants).Once(),
		tenants.On("Get", ctx, "t1").Return(storedTenant(t), nil).Once(),
	)

	h := commands.NewTenantSettingsCommandHandler(tenantFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrValueIsOutOfRange)
}

func TestWipeTenantCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	users := new(MockUserRepository)
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	orders := new(MockOrderRepository)
	aggregates := new(MockAggregateRepository)
	tenants := new(MockTenantRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("UserRepository").Return(users)
	uow.On("ProductRepository").Return(products)
	uow.On("CategoryRepository").Return(categories)
	uow.On("OrderRepository").Return(orders)
	uow.On("AggregateRepository").Return(aggregates)
	uow.On("TenantRepository").Return(tenants)

	mock.InOrder(
		users.On("DeleteByTenant", ctx, "t1").Return(3, nil).Once(),
		products.On("DeleteByTenant", ctx, "t1", commands.BatchSize).Return(2, nil).Once(),
		categories.On("DeleteByTenant", ctx, "t1", commands.BatchSize).Return(1, nil).Once(),
		orders.On("DeleteByTenant", ctx, "t1", commands.BatchSize).Return(commands.BatchSize, nil).Once(),
		orders.On("DeleteByTenant", ctx, "t1", commands.BatchSize).Return(10, nil).Once(),
		aggregates.On("DeleteByTenant", ctx, "t1", commands.BatchSize).Return(0, nil).Once(),
		tenants.On("Delete", ctx, "t1").Return(nil).Once(),
	)

	type report struct {
		step    commands.WipeStep
		deleted int
	}
	var progress []report
	cmd, err := commands.NewWipeTenantCommand("t1", func(step commands.WipeStep, deleted int) {
		progress = append(progress, report{step, deleted})
	})
	require.NoError(t, err)

	factory := new(MockFactory[commands.UoW])
	factory.On("Create").Return(uow)

	h := commands.NewWipeTenantCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, []report{
		{commands.WipeUsers, 3},
		{commands.WipeProducts, 2},
		{commands.WipeCategories, 1},
		{commands.WipeOrders, commands.BatchSize},
		{commands.WipeOrders, commands.BatchSize + 10},
		{commands.WipeAggregates, 0},
		{commands.WipeTenant, 1},
	}, progress)
	tenants.AssertExpectations(t)
}

func TestWipeTenantCommandHandler_Handle_StopsOnError(t *testing.T) {
	ctx := t.Context()

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("UserRepository").Return(users)
	users.On("DeleteByTenant", ctx, "t1").Return(0, errors.New("boom")).Once()

	factory := new(MockFactory[commands.UoW])
	factory.On("Create").Return(uow)

	cmd, _ := commands.NewWipeTenantCommand("t1", nil)
	h := commands.NewWipeTenantCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wipe users")
	uow.AssertNotCalled(t, "TenantRepository")
}
