package http

import (
	"net/http"
	"sync"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type newTenantRequest struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	RetentionDays int    `json:"retention_days"`
}

type toggleRequest struct {
	Value bool `json:"value"`
}

type retentionRequest struct {
	Days int `json:"days"`
}

type serviceFeeRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type wipeStepResponse struct {
	Step    commands.WipeStep `json:"step"`
	Deleted int               `json:"deleted"`
}

type sweepResponse struct {
	OrdersDeleted     int `json:"orders_deleted"`
	AggregatesDeleted int `json:"aggregates_deleted"`
}

func (s *Server) ListTenants(c echo.Context) error {
	res, err := s.query.ListTenants.Handle(c.Request().Context(), queries.NewListTenantsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) CreateTenant(c echo.Context) error {
	body, err := bind[newTenantRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateTenantCommand(body.Slug, body.Name, body.RetentionDays)
	if err != nil {
		return err
	}

	t, err := s.cmd.CreateTenant.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: t.ID()})
}

// WipeTenant deletes the tenant and reports the final count of each step. A
// failed wipe can be retried; steps already done report zero.
func (s *Server) WipeTenant(c echo.Context) error {
	var (
		mu    sync.Mutex
		steps []wipeStepResponse
	)
	progress := func(step commands.WipeStep, deleted int) {
		mu.Lock()
		defer mu.Unlock()
		if n := len(steps); n > 0 && steps[n-1].Step == step {
			steps[n-1].Deleted = deleted
			return
		}
		steps = append(steps, wipeStepResponse{Step: step, Deleted: deleted})
	}

	cmd, err := commands.NewWipeTenantCommand(TenantOf(c), progress)
	if err != nil {
		return err
	}

	if err = s.cmd.WipeTenant.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	s.logger.Info().Str("tenant_id", TenantOf(c)).Interface("steps", steps).Msg("tenant wiped")
	if steps == nil {
		steps = []wipeStepResponse{}
	}
	return c.JSON(http.StatusOK, steps)
}

func (s *Server) CountTenantData(c echo.Context) error {
	q, err := queries.NewCountTenantDataQuery(TenantOf(c))
	if err != nil {
		return err
	}
	res, err := s.query.CountTenantData.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) GetTenantConfig(c echo.Context) error {
	q, err := queries.NewGetTenantConfigQuery(TenantOf(c))
	if err != nil {
		return err
	}
	res, err := s.query.GetTenantConfig.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) SetTenantActive(c echo.Context) error {
	body, err := bind[toggleRequest](c)
	if err != nil {
		return err
	}
	return s.applySetting(c, func(id string) (commands.TenantSettingsCommand, error) {
		return commands.NewSetTenantActiveCommand(id, body.Value)
	})
}

func (s *Server) SetTenantOpen(c echo.Context) error {
	body, err := bind[toggleRequest](c)
	if err != nil {
		return err
	}
	return s.applySetting(c, func(id string) (commands.TenantSettingsCommand, error) {
		return commands.NewSetTenantOpenCommand(id, body.Value)
	})
}

func (s *Server) UpdateRetention(c echo.Context) error {
	body, err := bind[retentionRequest](c)
	if err != nil {
		return err
	}
	return s.applySetting(c, func(id string) (commands.TenantSettingsCommand, error) {
		return commands.NewUpdateRetentionPolicyCommand(id, body.Days)
	})
}

func (s *Server) UpdateServiceFee(c echo.Context) error {
	body, err := bind[serviceFeeRequest](c)
	if err != nil {
		return err
	}
	return s.applySetting(c, func(id string) (commands.TenantSettingsCommand, error) {
		return commands.NewUpdateServiceFeeCommand(id, body.Percent)
	})
}

func (s *Server) applySetting(c echo.Context, build func(tenantID string) (commands.TenantSettingsCommand, error)) error {
	cmd, err := build(TenantOf(c))
	if err != nil {
		return err
	}
	if err = s.cmd.TenantSettings.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SweepTenant runs the retention sweep of one tenant on demand.
func (s *Server) SweepTenant(c echo.Context) error {
	cmd, err := commands.NewSweepTenantCommand(TenantOf(c))
	if err != nil {
		return err
	}

	res, err := s.cmd.SweepTenant.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweepResponse{
		OrdersDeleted:     res.OrdersDeleted,
		AggregatesDeleted: res.AggregatesDeleted,
	})
}
