package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamehall/account-system/internal/core/ports"
)

// ctxActor extracts the acting admin injected by the AdminAuth middleware.
// An empty admin id means the middleware did not run; reject with 401 rather
// than passing an anonymous actor to the service layer.
func ctxActor(c echo.Context) (ports.AdminActor, error) {
	id, _ := c.Get("admin_id").(string)
	if id == "" {
		return ports.AdminActor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)
	return ports.AdminActor{ID: id, Role: role}, nil
}
