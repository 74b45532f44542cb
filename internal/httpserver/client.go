package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

const maxPictureBytes = 5 << 20

type ClientHTTP struct {
	Svc *service.ClientService
}

func (h *ClientHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.register")

	var req transport.ClientNewRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "register_client_error", err)
	}
	cli, err := service.FromNewDTO(req)
	if err != nil {
		return fail(l, "register_client_error", err)
	}
	created, err := h.Svc.Insert(ctx, cli)
	if err != nil {
		return fail(l, "register_client_error", err)
	}

	setLocation(c, created.ID)
	return c.JSON(http.StatusCreated, transport.ToClient(*created))
}

func (h *ClientHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.list")

	items, err := h.Svc.FindAll(ctx)
	if err != nil {
		return fail(l, "list_clients_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToList(items, transport.ToClient))
}

func (h *ClientHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.page")

	page, err := h.Svc.FindPage(ctx, pageRequest(c, "name", "ASC"))
	if err != nil {
		return fail(l, "page_clients_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToPage(page, transport.ToClient))
}

func (h *ClientHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.get")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	cli, err := h.Svc.FindByID(ctx, middleware.PrincipalFrom(c), id)
	if err != nil {
		return fail(l, "get_client_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToClient(*cli))
}

func (h *ClientHTTP) ByEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.by_email")

	email := c.QueryParam("value")
	if email == "" {
		return badRequest("value is required")
	}
	cli, err := h.Svc.FindByEmail(ctx, middleware.PrincipalFrom(c), email)
	if err != nil {
		return fail(l, "get_client_by_email_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToClient(*cli))
}

func (h *ClientHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.update")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	var req transport.ClientUpdateRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "update_client_error", err)
	}
	if _, err := h.Svc.Update(ctx, middleware.PrincipalFrom(c), service.FromUpdateDTO(id, req)); err != nil {
		return fail(l, "update_client_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ClientHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.delete")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	if err := h.Svc.Delete(ctx, middleware.PrincipalFrom(c), id); err != nil {
		return fail(l, "delete_client_error", err)
	}
	l.Info("delete_client_success", "client_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ClientHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.change_password")

	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	var req transport.PasswordRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "change_password_error", err)
	}
	if err := h.Svc.ChangePassword(ctx, middleware.PrincipalFrom(c), id, req.Password); err != nil {
		return fail(l, "change_password_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ClientHTTP) UploadPicture(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "client.upload_picture")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_picture_error", "status", 400, "reason", "missing file", "error", err)
		return badRequest("multipart field file is required")
	}
	if fh.Size > maxPictureBytes {
		return badRequest("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(l, "upload_picture_error", err)
	}
	defer f.Close()

	url, err := h.Svc.UploadProfilePicture(ctx, middleware.PrincipalFrom(c), f)
	if err != nil {
		return fail(l, "upload_picture_error", err)
	}
	c.Response().Header().Set(echo.HeaderLocation, url)
	return c.NoContent(http.StatusCreated)
}
