package http

import (
	"errors"
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type itemRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Qty      int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

type orderRequest struct {
	TableNumber order.TableNumber `json:"table_number"`
	Items       []itemRequest     `json:"items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func toItems(in []itemRequest) ([]order.Item, error) {
	items := make([]order.Item, 0, len(in))
	var all error
	for _, r := range in {
		item, err := order.NewItem(r.Name, r.Category, r.Qty, r.Price)
		if err != nil {
			all = errors.Join(all, err)
			continue
		}
		items = append(items, item)
	}
	return items, all
}

// ordersQuery builds the listing named by the view query parameter.
func ordersQuery(c echo.Context) (queries.ListOrdersQuery, error) {
	var (
		view  string
		table string
		from  *time.Time
	)
	if err := errors.Join(
		queryParam(c, "view", true, &view),
		queryParam(c, "table", false, &table),
		queryParam(c, "from", false, &from),
	); err != nil {
		return queries.ListOrdersQuery{}, err
	}

	tenantID := TenantOf(c)
	switch queries.OrderView(view) {
	case queries.ActiveForTableView:
		n, err := order.ParseTableNumber(table)
		if err != nil {
			return queries.ListOrdersQuery{}, err
		}
		return queries.NewActiveOrdersForTableQuery(tenantID, n)
	case queries.ReadyView:
		return queries.NewReadyOrdersQuery(tenantID)
	case queries.SalesView:
		return queries.NewSalesHistoryQuery(tenantID, from)
	case queries.KitchenView:
		return queries.NewKitchenOrdersQuery(tenantID)
	default:
		return queries.ListOrdersQuery{}, errs.NewValueIsInvalidError("view")
	}
}

func (s *Server) ListOrders(c echo.Context) error {
	q, err := ordersQuery(c)
	if err != nil {
		return err
	}
	res, err := s.query.ListOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) StreamOrders(c echo.Context) error {
	q, err := ordersQuery(c)
	if err != nil {
		return err
	}
	return streamLive(s, c, ports.OrdersTopic, TenantOf(c), loader(s.query.ListOrders.Handle, q))
}

func (s *Server) CreateOrder(c echo.Context) error {
	body, err := bind[orderRequest](c)
	if err != nil {
		return err
	}
	items, err := toItems(body.Items)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, TenantOf(c), body.TableNumber, items, body.TotalAmount)
	if err != nil {
		return err
	}
	if err = s.cmd.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	body, err := bind[orderRequest](c)
	if err != nil {
		return err
	}
	items, err := toItems(body.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(TenantOf(c), id, items, body.TotalAmount)
	if err != nil {
		return err
	}
	if err = s.cmd.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(TenantOf(c), id)
	if err != nil {
		return err
	}
	if err = s.cmd.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus moves an order along its lifecycle. Finishing an order
// schedules its analytics aggregation in the background.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	body, err := bind[statusRequest](c)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(TenantOf(c), id, status)
	if err != nil {
		return err
	}
	if err = s.cmd.UpdateOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
