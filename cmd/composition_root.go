package cmd

import (
	"context"
	"fmt"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/firebaseauth"
	"restaurant/internal/adapters/out/localauth"
	"restaurant/internal/adapters/out/localstate"
	"restaurant/internal/adapters/out/pgnotify"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/application/background"
	"restaurant/internal/core/application/tenantctx"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/logger"
	"restaurant/internal/pkg/storeclock"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuthBackend is the primary auth context together with the factory of
// disposable ones.
type AuthBackend interface {
	ports.AuthProvider
	ports.IsolatedAuthFactory
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	calendar   storeclock.Calendar
	auth       AuthBackend
	feed       *pgnotify.Hub
	state      *localstate.Store
	runner     *background.Runner
	resolver   *tenantctx.Resolver
	logger     zerolog.Logger
}

func NewCompositionRoot(
	ctx context.Context,
	cfg Config,
	gormDB *gorm.DB,
	feed *pgnotify.Hub,
	state *localstate.Store,
	runner *background.Runner,
	log zerolog.Logger,
) (*CompositionRoot, error) {
	clk := clock.New()
	auth, err := newAuthBackend(ctx, cfg, gormDB, clk, log)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clk,
		calendar:   storeclock.New(clk, cfg.Location()),
		auth:       auth,
		feed:       feed,
		state:      state,
		runner:     runner,
		resolver:   tenantctx.NewResolver(state, cfg.FallbackTenant, logger.Component(log, "tenant_context")),
		logger:     log,
	}, nil
}

func newAuthBackend(ctx context.Context, cfg Config, gormDB *gorm.DB, clk clock.Clock, log zerolog.Logger) (AuthBackend, error) {
	switch cfg.AuthProvider {
	case FirebaseAuth:
		p, err := firebaseauth.NewProvider(ctx, firebaseauth.Config{
			ProjectID:       cfg.FirebaseProjectID,
			APIKey:          cfg.FirebaseAPIKey,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("firebase auth: %w", err)
		}
		return p, nil
	case LocalAuth:
		p, err := localauth.NewProvider(gormDB, localauth.Config{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			TokenTTL: cfg.TokenTTL,
		}, clk, logger.Component(log, "local_auth"))
		if err != nil {
			return nil, fmt.Errorf("local auth: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) tenantUoWFactory() commands.TenantUoWFactory {
	return FuncTenantUoWFactory(func() commands.TenantUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.auth, c.userUoWFactory())
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.auth, c.resolver)
}

func (c *CompositionRoot) CreateRegisterStaffCommandHandler() commands.RegisterStaffCommandHandler {
	return commands.NewRegisterStaffCommandHandler(c.auth, c.userUoWFactory(), c.clock, logger.Component(c.logger, "staff"))
}

func (c *CompositionRoot) CreateReplaceOwnerAccessCommandHandler() commands.ReplaceOwnerAccessCommandHandler {
	registrar := c.CreateRegisterStaffCommandHandler()
	return commands.NewReplaceOwnerAccessCommandHandler(&registrar, c.userUoWFactory())
}

func (c *CompositionRoot) CreateAggregateOrderCommandHandler() commands.AggregateOrderCommandHandler {
	f := FuncAnalyticsUoWFactory(func() commands.AnalyticsUoW { return c.uowFactory.Create() })
	return commands.NewAggregateOrderCommandHandler(f, c.calendar)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	aggregator := c.CreateAggregateOrderCommandHandler()
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderUoWFactory(), c.runner, &aggregator, c.clock, logger.Component(c.logger, "order_status"),
	)
}

func (c *CompositionRoot) CreateSweepTenantCommandHandler() commands.SweepTenantCommandHandler {
	f := FuncMaintenanceUoWFactory(func() commands.MaintenanceUoW { return c.uowFactory.Create() })
	return commands.NewSweepTenantCommandHandler(f, c.calendar, c.cfg.SweepPause)
}

func (c *CompositionRoot) CreateWipeTenantCommandHandler() commands.WipeTenantCommandHandler {
	f := FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
	return commands.NewWipeTenantCommandHandler(f)
}

func (c *CompositionRoot) commands() httpin.Commands {
	return httpin.Commands{
		Login:              c.CreateLoginCommandHandler(),
		Logout:             c.CreateLogoutCommandHandler(),
		ResetPassword:      commands.NewResetPasswordCommandHandler(c.auth),
		RegisterSuperAdmin: commands.NewRegisterSuperAdminCommandHandler(c.auth, c.userUoWFactory(), c.clock),
		RegisterStaff:      c.CreateRegisterStaffCommandHandler(),
		ReplaceOwner:       c.CreateReplaceOwnerAccessCommandHandler(),
		RevokeAccess:       commands.NewRevokeAccessCommandHandler(c.userUoWFactory()),

		CreateTenant:   commands.NewCreateTenantCommandHandler(c.tenantUoWFactory(), c.clock),
		TenantSettings: commands.NewTenantSettingsCommandHandler(c.tenantUoWFactory()),
		WipeTenant:     c.CreateWipeTenantCommandHandler(),
		SweepTenant:    c.CreateSweepTenantCommandHandler(),

		CreateOrder:       commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock),
		UpdateOrder:       commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.clock),
		CancelOrder:       commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),

		SaveCategory:       commands.NewSaveCategoryCommandHandler(c.catalogUoWFactory()),
		SaveProduct:        commands.NewSaveProductCommandHandler(c.catalogUoWFactory()),
		DeleteCatalogEntry: commands.NewDeleteCatalogEntryCommandHandler(c.catalogUoWFactory()),
	}
}

func (c *CompositionRoot) queries() httpin.Queries {
	return httpin.Queries{
		ListOrders:      queries.NewListOrdersQueryHandler(c.gormDB),
		GetAnalytics:    queries.NewGetAnalyticsQueryHandler(c.gormDB),
		ListCategories:  queries.NewListCategoriesQueryHandler(c.gormDB),
		ListProducts:    queries.NewListProductsQueryHandler(c.gormDB),
		ListStaff:       queries.NewListStaffQueryHandler(c.gormDB),
		ListTenants:     queries.NewListTenantsQueryHandler(c.gormDB),
		GetTenantConfig: queries.NewGetTenantConfigQueryHandler(c.gormDB),
		CountTenantData: queries.NewCountTenantDataQueryHandler(c.gormDB),
	}
}

// CreateHTTPServer wires the API. Reads outside a transaction go straight to
// the database through a unit of work that is never begun.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	readers := c.uowFactory.Create()
	httpLogger := logger.Component(c.logger, "http")
	guard := httpin.NewGuard(c.auth, readers.UserRepository(), readers.TenantRepository(), services.NewAccessPolicy(), httpLogger)

	return httpin.NewServer(
		c.commands(),
		c.queries(),
		guard,
		c.feed,
		readers.TenantRepository(),
		c.resolver,
		c.clock,
		httpLogger,
	)
}

func (c *CompositionRoot) CreateMaintenanceJob() *jobs.MaintenanceJob {
	sweeper := c.CreateSweepTenantCommandHandler()
	return jobs.NewMaintenanceJob(
		queries.NewListTenantsQueryHandler(c.gormDB),
		&sweeper,
		c.state,
		c.calendar,
		c.cfg.MaintenanceSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAnalyticsUoWFactory func() commands.AnalyticsUoW

func (f FuncAnalyticsUoWFactory) Create() commands.AnalyticsUoW {
	return f()
}

type FuncMaintenanceUoWFactory func() commands.MaintenanceUoW

func (f FuncMaintenanceUoWFactory) Create() commands.MaintenanceUoW {
	return f()
}

type FuncTenantUoWFactory func() commands.TenantUoW

func (f FuncTenantUoWFactory) Create() commands.TenantUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
