package http

import (
	"net/http"

	"restaurant/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the API on e. Every /api/v1 request is validated against
// the embedded API description before it reaches a handler.
func (s *Server) Register(e *echo.Echo, validator *RequestValidator) {
	e.HTTPErrorHandler = s.ErrorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator.Middleware)

	api.POST("/auth/login", s.Login)
	api.POST("/auth/password-reset", s.ResetPassword)
	api.POST("/setup/super-admin", s.RegisterSuperAdmin)

	g := s.guard
	session := api.Group("", g.Authenticate)
	session.POST("/auth/logout", s.Logout)
	session.GET("/session/context", s.SessionContext)
	session.GET("/session/gate", s.GateStream)

	platform := session.Group("/tenants", g.RequirePage(services.MasterPage))
	platform.GET("", s.ListTenants)
	platform.POST("", s.CreateTenant)

	master := session.Group("/tenants/:tenant", g.RequirePage(services.MasterPage), g.TenantScope)
	master.DELETE("", s.WipeTenant)
	master.GET("/data-count", s.CountTenantData)
	master.PUT("/active", s.SetTenantActive)
	master.GET("/owner", s.GetOwner)
	master.POST("/owner", s.RegisterOwner)
	master.PUT("/owner", s.ReplaceOwner)
	master.DELETE("/owner/:uid", s.UnlinkOwner)

	admin := session.Group("/tenants/:tenant", g.RequirePage(services.AdminPage), g.TenantScope, g.AccessGate)
	admin.GET("/config", s.GetTenantConfig)
	admin.PUT("/open", s.SetTenantOpen)
	admin.PUT("/retention", s.UpdateRetention)
	admin.PUT("/service-fee", s.UpdateServiceFee)
	admin.POST("/maintenance/sweep", s.SweepTenant)
	admin.GET("/employees", s.ListEmployees)
	admin.POST("/employees", s.RegisterEmployee)
	admin.DELETE("/employees/:uid", s.DeleteEmployee)
	admin.GET("/analytics", s.GetAnalytics)
	admin.GET("/analytics/stream", s.StreamAnalytics)
	admin.GET("/categories", s.ListCategories)
	admin.POST("/categories", s.SaveCategory)
	admin.GET("/categories/stream", s.StreamCategories)
	admin.DELETE("/categories/:id", s.DeleteCategory)
	admin.GET("/products", s.ListProducts)
	admin.POST("/products", s.CreateProduct)
	admin.GET("/products/stream", s.StreamProducts)
	admin.PUT("/products/:id", s.UpdateProduct)
	admin.DELETE("/products/:id", s.DeleteProduct)

	floor := session.Group("/tenants/:tenant", g.RequirePage(services.OperationalPage), g.TenantScope, g.AccessGate)
	floor.GET("/menu", s.GetMenu)
	floor.GET("/menu/stream", s.StreamMenu)
	floor.GET("/orders", s.ListOrders)
	floor.POST("/orders", s.CreateOrder)
	floor.GET("/orders/stream", s.StreamOrders)
	floor.PUT("/orders/:id", s.UpdateOrder)
	floor.POST("/orders/:id/cancel", s.CancelOrder)
	floor.PUT("/orders/:id/status", s.UpdateOrderStatus)
}
