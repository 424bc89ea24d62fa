package http

import (
	"errors"
	"net/http"
	"time"

	"restaurant/internal/core/application/gate"
	"restaurant/internal/core/application/tenantctx"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type newStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      user.Role `json:"role"`
	TenantID  string    `json:"tenant_id"`
}

type subjectResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

func toSubjectResponse(s ports.Subject) subjectResponse {
	return subjectResponse{UID: s.UID, Email: s.Email}
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	body, err := bind[credentialsRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(body.Email, body.Password)
	if err != nil {
		return err
	}

	res, err := s.cmd.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		UID:       res.Subject.UID,
		Email:     res.Subject.Email,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Role:      res.Role,
		TenantID:  res.TenantID,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (s *Server) Logout(c echo.Context) error {
	cmd, err := commands.NewLogoutCommand(PrincipalOf(c).Subject.UID)
	if err != nil {
		return err
	}
	if err = s.cmd.Logout.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword handles POST /api/v1/auth/password-reset.
func (s *Server) ResetPassword(c echo.Context) error {
	body, err := bind[emailRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResetPasswordCommand(body.Email)
	if err != nil {
		return err
	}
	if err = s.cmd.ResetPassword.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterSuperAdmin handles POST /api/v1/setup/super-admin.
func (s *Server) RegisterSuperAdmin(c echo.Context) error {
	body, err := bind[newStaffRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterSuperAdminCommand(body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	subject, err := s.cmd.RegisterSuperAdmin.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSubjectResponse(subject))
}

type sessionContextResponse struct {
	TenantID  string               `json:"tenant_id"`
	Source    tenantctx.Source     `json:"source"`
	Bound     bool                 `json:"bound"`
	Role      user.Role            `json:"role"`
	Decision  string               `json:"decision"`
	Redirect  string               `json:"redirect,omitempty"`
	GateState services.AccessState `json:"gate_state"`
}

// SessionContext handles GET /api/v1/session/context. It tells the client
// which tenant the page works on, whether the page may be shown and whether
// the tenant is currently accessible.
func (s *Server) SessionContext(c echo.Context) error {
	var rawPage, urlTenant string
	if err := queryParam(c, "page", true, &rawPage); err != nil {
		return err
	}
	if err := queryParam(c, "id", false, &urlTenant); err != nil {
		return err
	}

	page, err := services.ParsePage(rawPage)
	if err != nil {
		return err
	}

	p := PrincipalOf(c)
	req := tenantctx.Request{URLParam: urlTenant, Page: page}
	if p.Role.BindsTenant() {
		req.Explicit = p.TenantID
	}
	res := s.resolver.Resolve(req)

	d := s.guard.policy.Evaluate(p.Role, page)
	out := sessionContextResponse{
		TenantID:  res.TenantID,
		Source:    res.Source,
		Bound:     res.Bound,
		Role:      p.Role,
		Decision:  d.Effect.String(),
		Redirect:  d.Target,
		GateState: services.Open,
	}

	if res.Bound {
		t, err := s.tenants.Get(c.Request().Context(), res.TenantID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		out.GateState = gate.Evaluate(t, p.Role)
	}

	return c.JSON(http.StatusOK, out)
}

// GateStream handles GET /api/v1/session/gate. Every gate transition is sent
// as a "gate" event and every opening or closing of the tenant as an
// "operation" event.
func (s *Server) GateStream(c echo.Context) error {
	var urlTenant string
	if err := queryParam(c, "id", false, &urlTenant); err != nil {
		return err
	}

	p := PrincipalOf(c)
	tenantID := urlTenant
	if p.Role.BindsTenant() {
		tenantID = p.TenantID
	}

	ctx := c.Request().Context()
	g := gate.New(s.feed, s.tenants, s.logger)
	g.Check(ctx, tenantID, p.Role)
	defer g.Release()

	stream := openEventStream(c)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-g.Events():
			if err := stream.send("gate", gateEventResponse{
				TenantID:   ev.TenantID,
				Previous:   ev.Previous,
				Current:    ev.Current,
				Reload:     ev.Reload,
				TenantOpen: ev.TenantOpen,
			}); err != nil {
				return nil
			}
		case op := <-g.Operations():
			if err := stream.send("operation", operationResponse{TenantID: op.TenantID, Open: op.Open}); err != nil {
				return nil
			}
		}
	}
}

type gateEventResponse struct {
	TenantID   string               `json:"tenant_id"`
	Previous   services.AccessState `json:"previous"`
	Current    services.AccessState `json:"current"`
	Reload     bool                 `json:"reload"`
	TenantOpen bool                 `json:"tenant_open"`
}

type operationResponse struct {
	TenantID string `json:"tenant_id"`
	Open     bool   `json:"open"`
}
