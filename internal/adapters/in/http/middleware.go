package http

import (
	"context"
	"errors"
	"strings"

	"restaurant/internal/core/application/gate"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	principalKey = "principal"
	tenantKey    = "tenant"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject  ports.Subject
	Role     user.Role
	TenantID string
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (ports.Subject, error)
	SignOut(ctx context.Context, uid string) error
}

type UserReader interface {
	Get(ctx context.Context, uid string) (*user.User, error)
}

// Guard holds the request-level security checks.
type Guard struct {
	tokens  TokenVerifier
	users   UserReader
	tenants gate.TenantReader
	policy  services.AccessPolicy
	logger  zerolog.Logger
}

func NewGuard(
	tokens TokenVerifier,
	users UserReader,
	tenants gate.TenantReader,
	policy services.AccessPolicy,
	logger zerolog.Logger,
) *Guard {
	return &Guard{tokens: tokens, users: users, tenants: tenants, policy: policy, logger: logger}
}

// Authenticate verifies the bearer token and loads the caller's access
// record. A subject without a record proceeds as a guest.
func (g *Guard) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return errs.NewAuthError(ports.AuthInvalidToken, "Sessão inválida.")
		}

		ctx := c.Request().Context()
		subject, err := g.tokens.VerifyToken(ctx, token)
		if err != nil {
			return err
		}

		p := Principal{Subject: subject, Role: user.Guest}
		record, err := g.users.Get(ctx, subject.UID)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
		case err != nil:
			return err
		default:
			p.Role = record.Role()
			p.TenantID = record.TenantID()
		}

		c.Set(principalKey, p)
		return next(c)
	}
}

// RequirePage applies the access policy. A plain denial also revokes the
// caller's tokens so the client lands on the login page.
func (g *Guard) RequirePage(page services.Page) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalOf(c)
			d := g.policy.Evaluate(p.Role, page)
			if d.Allowed() {
				return next(c)
			}

			if d.Effect == services.Deny && p.Subject.UID != "" {
				if err := g.tokens.SignOut(c.Request().Context(), p.Subject.UID); err != nil {
					g.logger.Warn().Err(err).Str("uid", p.Subject.UID).Msg("terminate session")
				}
			}
			return errs.NewAccessDeniedError(p.Role.String(), string(page), d.Target)
		}
	}
}

// TenantScope binds the request to the :tenant path parameter. Owners and
// employees may only address their own tenant.
func (g *Guard) TenantScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := PrincipalOf(c)
		id := strings.TrimSpace(c.Param("tenant"))
		if id == "" {
			return errs.NewValueIsRequiredError("tenant")
		}
		if p.Role.BindsTenant() && id != p.TenantID {
			return errs.NewAccessDeniedError(p.Role.String(), "tenant "+id, "")
		}

		c.Set(tenantKey, id)
		return next(c)
	}
}

// AccessGate refuses requests while the tenant is suspended or, for
// employees, closed for operation.
func (g *Guard) AccessGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := TenantOf(c)

		t, err := g.tenants.Get(c.Request().Context(), id)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			t = nil
		case err != nil:
			return err
		}

		if state := gate.Evaluate(t, PrincipalOf(c).Role); state.Blocking() {
			return &LockedError{TenantID: id, State: state}
		}
		return next(c)
	}
}

func PrincipalOf(c echo.Context) Principal {
	p, _ := c.Get(principalKey).(Principal)
	if p.Role == "" {
		p.Role = user.Guest
	}
	return p
}

func TenantOf(c echo.Context) string {
	id, _ := c.Get(tenantKey).(string)
	return id
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		// EventSource cannot set headers; streams pass the token as a query
		// parameter instead.
		if token = c.QueryParam("access_token"); token != "" {
			return token, true
		}
		return "", false
	}
	return strings.TrimSpace(token), true
}
