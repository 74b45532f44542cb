package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/metrics"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/middleware/csrf"
)

type Deps struct {
	CategoryHandler *CategoryHTTP
	ProductHandler  *ProductHTTP
	LocationHandler *LocationHTTP
	ClientHandler   *ClientHTTP
	OrderHandler    *OrderHTTP
	AuthHandler     *AuthHTTP

	JWTSecret []byte
	Refresher middleware.Refresher

	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
	// CSRF enables the double-submit check for cookie-authenticated requests.
	CSRF *csrf.Config
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	var api []echo.MiddlewareFunc
	if d.CSRF != nil {
		api = append(api, csrf.Middleware(*d.CSRF))
	}
	g := e.Group("", api...)

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.Refresher)

	categories := g.Group("/categories")
	categories.GET("", d.CategoryHandler.List)
	categories.GET("/page", d.CategoryHandler.Page)
	categories.GET("/:id", d.CategoryHandler.Get)
	adminCategories := categories.Group("", authMW.RequireAdmin)
	adminCategories.POST("", d.CategoryHandler.Create)
	adminCategories.PUT("/:id", d.CategoryHandler.Update)
	adminCategories.DELETE("/:id", d.CategoryHandler.Delete)
	adminCategories.POST("/:id/products/:productId", d.CategoryHandler.LinkProduct)
	adminCategories.DELETE("/:id/products/:productId", d.CategoryHandler.UnlinkProduct)

	products := g.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/:id", d.ProductHandler.Get)
	adminProducts := products.Group("", authMW.RequireAdmin)
	adminProducts.POST("", d.ProductHandler.Create)
	adminProducts.POST("/reindex", d.ProductHandler.Reindex)

	states := g.Group("/states")
	states.GET("", d.LocationHandler.States)
	states.GET("/:id/cities", d.LocationHandler.Cities)

	clients := g.Group("/clients")
	clients.POST("", d.ClientHandler.Register)
	authClients := clients.Group("", authMW.RequireAuth)
	authClients.GET("/email", d.ClientHandler.ByEmail)
	authClients.GET("/:id", d.ClientHandler.Get)
	authClients.PUT("/:id", d.ClientHandler.Update)
	authClients.PUT("/:id/password", d.ClientHandler.ChangePassword)
	authClients.POST("/picture", d.ClientHandler.UploadPicture)
	adminClients := clients.Group("", authMW.RequireAdmin)
	adminClients.GET("", d.ClientHandler.List)
	adminClients.GET("/page", d.ClientHandler.Page)
	adminClients.DELETE("/:id", d.ClientHandler.Delete)

	orders := g.Group("/orders", authMW.RequireAuth)
	orders.GET("", d.OrderHandler.Page)
	orders.GET("/:id", d.OrderHandler.Get)
	orders.POST("", d.OrderHandler.Create)

	g.POST("/login", d.AuthHandler.Login)
	g.POST("/auth/refresh_token", d.AuthHandler.Refresh)
	g.POST("/auth/forgot", d.AuthHandler.Forgot)
	g.POST("/logout", d.AuthHandler.Logout)
}
