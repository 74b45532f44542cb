package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.FindAll(ctx)
	if err != nil {
		return fail(l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToList(items, transport.ToCategory))
}

func (h *CategoryHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.page")

	page, err := h.Svc.FindPage(ctx, pageRequest(c, "name", "ASC"))
	if err != nil {
		return fail(l, "page_categories_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToPage(page, transport.ToCategory))
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := idParam(c, "id")
	if err != nil {
		l.Warn("get_category_error", "status", 400, "reason", "bad id", "error", err)
		return badRequest(err.Error())
	}
	cat, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return fail(l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToCategoryDetail(cat))
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_category_error", err)
	}
	cat, err := h.Svc.Insert(ctx, req.Name)
	if err != nil {
		return fail(l, "create_category_error", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	setLocation(c, cat.ID)
	return c.JSON(http.StatusCreated, transport.ToCategory(*cat))
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := idParam(c, "id")
	if err != nil {
		l.Warn("update_category_error", "status", 400, "reason", "bad id", "error", err)
		return badRequest(err.Error())
	}
	var req transport.CategoryRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "update_category_error", err)
	}
	if _, err := h.Svc.Update(ctx, id, req.Name); err != nil {
		return fail(l, "update_category_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := idParam(c, "id")
	if err != nil {
		l.Warn("delete_category_error", "status", 400, "reason", "bad id", "error", err)
		return badRequest(err.Error())
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_category_error", err)
	}
	l.Info("delete_category_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) LinkProduct(c echo.Context) error {
	return h.membership(c, true)
}

func (h *CategoryHTTP) UnlinkProduct(c echo.Context) error {
	return h.membership(c, false)
}

func (h *CategoryHTTP) membership(c echo.Context, link bool) error {
	ctx := c.Request().Context()
	op := "unlink_product_error"
	if link {
		op = "link_product_error"
	}
	l := logging.FromContext(ctx).With("handler", "category.membership")

	catID, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	prodID, err := idParam(c, "productId")
	if err != nil {
		return badRequest(err.Error())
	}

	var cat *models.Category
	if link {
		cat, err = h.Svc.LinkProduct(ctx, catID, prodID)
	} else {
		cat, err = h.Svc.UnlinkProduct(ctx, catID, prodID)
	}
	if err != nil {
		return fail(l, op, err)
	}
	return c.JSON(http.StatusOK, transport.ToCategoryDetail(cat))
}
