package http

import (
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"
)

func analyticsQuery(c echo.Context) (queries.GetAnalyticsQuery, error) {
	var from types.Date
	if err := queryParam(c, "from", true, &from); err != nil {
		return queries.GetAnalyticsQuery{}, err
	}
	return queries.NewGetAnalyticsQuery(TenantOf(c), kernel.DateOf(from.Time, time.UTC))
}

func (s *Server) GetAnalytics(c echo.Context) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	res, err := s.query.GetAnalytics.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) StreamAnalytics(c echo.Context) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	return streamLive(s, c, ports.AggregatesTopic, TenantOf(c), loader(s.query.GetAnalytics.Handle, q))
}
