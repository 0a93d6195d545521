package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gamehall/account-system/internal/core/ports"
)

// AdminAuth validates the bearer token and requires the privileged flag.
// A missing or invalid token is 401; a valid but non-privileged token is 403.
// On success the admin id and role are injected into the request context.
func AdminAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !claims.Privileged {
				return echo.NewHTTPError(http.StatusForbidden, "admin token required")
			}

			c.Set("admin_id", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
