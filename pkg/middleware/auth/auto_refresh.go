package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	ctxPrincipal = "principal"
)

// Refresher rotates a refresh token into a new token pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret []byte
	Refresher Refresher
}

func NewAutoRefreshMiddleware(secret []byte, refresher Refresher) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret: secret,
		Refresher: refresher,
	}
}

type ValidatorFunc func(p *tokens.Principal) error

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AutoRefreshMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(p *tokens.Principal) error {
		if !p.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AutoRefreshMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, fromHeader := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err == nil {
			return m.proceed(c, next, claims, validator)
		}

		// Bearer clients refresh explicitly through /auth/refresh_token.
		if fromHeader || !errors.Is(err, jwt.ErrTokenExpired) || m.Refresher == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refresh, rErr := c.Cookie(RefreshCookie)
		if rErr != nil || refresh.Value == "" {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		pair, refErr := m.Refresher.Refresh(c.Request().Context(), refresh.Value)
		if refErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}
		SetAuthCookies(c, pair)

		newClaims, pErr := tokens.AccessClaimsFromToken(pair.AccessToken, m.JWTSecret)
		if pErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}

		return m.proceed(c, next, newClaims, validator)
	}
}

func (m *AutoRefreshMiddleware) proceed(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims, validator ValidatorFunc) error {
	p, err := claims.Principal()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
	}
	if validator != nil {
		if vErr := validator(p); vErr != nil {
			return vErr
		}
	}
	c.Set(ctxPrincipal, p)
	return next(c)
}

func accessToken(c echo.Context) (string, bool) {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), true
	}
	if ck, err := c.Cookie(AccessCookie); err == nil {
		return ck.Value, false
	}
	return "", false
}

// PrincipalFrom returns the caller set by RequireAuth/RequireAdmin, or nil.
func PrincipalFrom(c echo.Context) *tokens.Principal {
	p, _ := c.Get(ctxPrincipal).(*tokens.Principal)
	return p
}

func SetAuthCookies(c echo.Context, pair *tokens.Pair) {
	c.SetCookie(jwthelp.CreateCookie(AccessCookie, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(jwthelp.CreateCookie(RefreshCookie, pair.RefreshToken, "/", pair.RefreshExp))
}

func ClearAuthCookies(c echo.Context) { clearAuthCookies(c) }

func clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(RefreshCookie, "/"))
}
