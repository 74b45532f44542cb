package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func tokenResponse(c echo.Context, pair *tokens.Pair) error {
	middleware.SetAuthCookies(c, pair)
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+pair.AccessToken)
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		AccessExp:    pair.AccessExp,
		RefreshExp:   pair.RefreshExp,
	})
}

// refreshToken takes the refresh cookie first, then a JSON body.
func refreshToken(c echo.Context) string {
	if ck, err := c.Cookie(middleware.RefreshCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "login_error", err)
	}
	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login_error", err)
	}
	return tokenResponse(c, pair)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw := refreshToken(c)
	if raw == "" {
		l.Warn("refresh_error", "status", 401, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}
	pair, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		middleware.ClearAuthCookies(c)
		return fail(l, "refresh_error", err)
	}
	return tokenResponse(c, pair)
}

func (h *AuthHTTP) Forgot(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.forgot")

	var req transport.ForgotRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "forgot_error", err)
	}
	if err := h.Svc.Forgot(ctx, req.Email); err != nil {
		return fail(l, "forgot_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.Logout(ctx, refreshToken(c)); err != nil {
		return fail(l, "logout_error", err)
	}
	middleware.ClearAuthCookies(c)
	return c.NoContent(http.StatusNoContent)
}
