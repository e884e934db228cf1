package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aicode/auth-platform/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's identity claims into the request
// context. Handlers behind it read the caller via c.Get("user_id") and
// c.Get("email"). Presenting a refresh token here fails the type check
// inside VerifyAccess, so refresh tokens cannot be substituted for
// access tokens.
func JWTAuth(codec *utils.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := utils.ExtractFromHeader(c.Request().Header.Get("Authorization"))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := codec.VerifyAccess(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}
