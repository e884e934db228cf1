package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/aicode/auth-platform/internal/handler"
	"github.com/aicode/auth-platform/internal/middleware"
	"github.com/aicode/auth-platform/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth behind the rate limiter; endpoints
// that need a valid access token live under /v1 behind the JWT
// middleware. The limiter may be nil-equivalent (pass-through) when
// Redis is not configured.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, codec *utils.TokenCodec, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(codec))
	auth.POST("/auth/logout-all", a.LogoutAll)
	auth.GET("/auth/sessions", a.Sessions)
	auth.GET("/me", a.Me)
}
