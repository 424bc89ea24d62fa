// Package http is the JSON API. Handlers translate requests into commands and
// queries; live views are served as server-sent event streams.
package http

import (
	"strings"

	"restaurant/internal/core/application/gate"
	"restaurant/internal/core/application/tenantctx"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog"
)

// Commands holds the command handlers the API exposes.
type Commands struct {
	Login              commands.LoginCommandHandler
	Logout             commands.LogoutCommandHandler
	ResetPassword      commands.ResetPasswordCommandHandler
	RegisterSuperAdmin commands.RegisterSuperAdminCommandHandler
	RegisterStaff      commands.RegisterStaffCommandHandler
	ReplaceOwner       commands.ReplaceOwnerAccessCommandHandler
	RevokeAccess       commands.RevokeAccessCommandHandler

	CreateTenant   commands.CreateTenantCommandHandler
	TenantSettings commands.TenantSettingsCommandHandler
	WipeTenant     commands.WipeTenantCommandHandler
	SweepTenant    commands.SweepTenantCommandHandler

	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrder       commands.UpdateOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler

	SaveCategory       commands.SaveCategoryCommandHandler
	SaveProduct        commands.SaveProductCommandHandler
	DeleteCatalogEntry commands.DeleteCatalogEntryCommandHandler
}

// Queries holds the query handlers the API exposes.
type Queries struct {
	ListOrders      queries.ListOrdersQueryHandler
	GetAnalytics    queries.GetAnalyticsQueryHandler
	ListCategories  queries.ListCategoriesQueryHandler
	ListProducts    queries.ListProductsQueryHandler
	ListStaff       queries.ListStaffQueryHandler
	ListTenants     queries.ListTenantsQueryHandler
	GetTenantConfig queries.GetTenantConfigQueryHandler
	CountTenantData queries.CountTenantDataQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	cmd   Commands
	query Queries

	guard    *Guard
	feed     ports.ChangeFeed
	tenants  gate.TenantReader
	resolver *tenantctx.Resolver
	clock    clock.Clock
	logger   zerolog.Logger
}

func NewServer(
	cmd Commands,
	query Queries,
	guard *Guard,
	feed ports.ChangeFeed,
	tenants gate.TenantReader,
	resolver *tenantctx.Resolver,
	clk clock.Clock,
	logger zerolog.Logger,
) *Server {
	return &Server{
		cmd:      cmd,
		query:    query,
		guard:    guard,
		feed:     feed,
		tenants:  tenants,
		resolver: resolver,
		clock:    clk,
		logger:   logger,
	}
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromString(raw)
}

func pathString(c echo.Context, name string) (string, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return strings.TrimSpace(raw), nil
}

// queryParam binds a form-style query parameter into dest.
func queryParam(c echo.Context, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func bind[T any](c echo.Context) (T, error) {
	var body T
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return body, err
	}
	return body, nil
}
