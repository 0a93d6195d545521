package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gamehall/account-system/internal/core/domain"
)

// RequireRole enforces role-based access control on top of AdminAuth.
// Failures surface as domain.ErrForbidden so the central error handler
// renders the standard envelope.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
