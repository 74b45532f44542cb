package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	order, err := h.Svc.FindByID(ctx, middleware.PrincipalFrom(c), id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToOrder(*order))
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_order_error", err)
	}
	order, err := h.Svc.Insert(ctx, middleware.PrincipalFrom(c), service.FromOrderDTO(req))
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID)
	setLocation(c, order.ID)
	return c.JSON(http.StatusCreated, transport.ToOrder(*order))
}

func (h *OrderHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.page")

	page, err := h.Svc.FindPage(ctx, middleware.PrincipalFrom(c), pageRequest(c, "instant", "DESC"))
	if err != nil {
		return fail(l, "page_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToPage(page, transport.ToOrder))
}
