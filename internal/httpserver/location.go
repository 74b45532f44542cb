package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type LocationHTTP struct {
	Svc *service.LocationService
}

func (h *LocationHTTP) States(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "location.states")

	states, err := h.Svc.States(ctx)
	if err != nil {
		return fail(l, "list_states_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToList(states, transport.ToState))
}

func (h *LocationHTTP) Cities(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "location.cities")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	cities, err := h.Svc.Cities(ctx, id)
	if err != nil {
		return fail(l, "list_cities_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToList(cities, transport.ToCity))
}
