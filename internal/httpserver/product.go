package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

// List filters by ?name= fragment and ?categories=1,2 and pages the result.
func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	name := c.QueryParam("name")
	cats, err := idList(c.QueryParam("categories"))
	if err != nil {
		l.Warn("list_products_error", "status", 400, "reason", "bad categories", "error", err)
		return badRequest(err.Error())
	}

	page, err := h.Svc.Search(ctx, name, cats, pageRequest(c, "name", "ASC"))
	if err != nil {
		return fail(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToPage(page, transport.ToProduct))
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := idParam(c, "id")
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "bad id", "error", err)
		return badRequest(err.Error())
	}
	prod, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToProductDetail(prod))
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 0)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.SearchIndex(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_products_error", err)
	}
	l.Info("search_products_success", "total", res.Total)
	return c.JSON(http.StatusOK, transport.ToPage(res, transport.ToProduct))
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_product_error", err)
	}
	prod, err := h.Svc.Insert(ctx, &models.Product{Name: req.Name, Price: req.Price}, req.Categories)
	if err != nil {
		return fail(l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	setLocation(c, prod.ID)
	return c.JSON(http.StatusCreated, transport.ToProductDetail(prod))
}

func (h *ProductHTTP) Reindex(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.reindex")

	n, err := h.Svc.Reindex(ctx)
	if err != nil {
		return fail(l, "reindex_products_error", err)
	}
	l.Info("reindex_products_success", "count", n)
	return c.JSON(http.StatusOK, map[string]int{"indexed": n})
}
