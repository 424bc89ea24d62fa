package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type replaceOwnerRequest struct {
	newStaffRequest
	PreviousUID string `json:"previous_uid"`
}

func (s *Server) GetOwner(c echo.Context) error {
	q, err := queries.NewGetTenantOwnerQuery(TenantOf(c))
	if err != nil {
		return err
	}

	owner, err := s.query.ListStaff.First(c.Request().Context(), q)
	if err != nil {
		return err
	}
	if owner == nil {
		return errs.NewObjectNotFoundError("owner", TenantOf(c))
	}
	return c.JSON(http.StatusOK, owner)
}

func (s *Server) RegisterOwner(c echo.Context) error {
	return s.registerStaff(c, commands.NewRegisterOwnerCommand)
}

func (s *Server) RegisterEmployee(c echo.Context) error {
	return s.registerStaff(c, commands.NewRegisterEmployeeCommand)
}

func (s *Server) registerStaff(
	c echo.Context,
	build func(tenantID, name, email, password string) (commands.RegisterStaffCommand, error),
) error {
	body, err := bind[newStaffRequest](c)
	if err != nil {
		return err
	}

	cmd, err := build(TenantOf(c), body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	subject, err := s.cmd.RegisterStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSubjectResponse(subject))
}

// ReplaceOwner registers a new owner and then removes the previous one's
// access.
func (s *Server) ReplaceOwner(c echo.Context) error {
	body, err := bind[replaceOwnerRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReplaceOwnerAccessCommand(TenantOf(c), body.PreviousUID, body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	subject, err := s.cmd.ReplaceOwner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubjectResponse(subject))
}

func (s *Server) UnlinkOwner(c echo.Context) error {
	return s.revoke(c, commands.NewUnlinkOwnerCommand)
}

func (s *Server) ListEmployees(c echo.Context) error {
	q, err := queries.NewListEmployeesQuery(TenantOf(c))
	if err != nil {
		return err
	}

	res, err := s.query.ListStaff.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) DeleteEmployee(c echo.Context) error {
	return s.revoke(c, commands.NewDeleteEmployeeCommand)
}

func (s *Server) revoke(c echo.Context, build func(tenantID, uid string) (commands.RevokeAccessCommand, error)) error {
	uid, err := pathString(c, "uid")
	if err != nil {
		return err
	}

	cmd, err := build(TenantOf(c), uid)
	if err != nil {
		return err
	}
	if err = s.cmd.RevokeAccess.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
