package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// ctxClaims extracts the session claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both values must be
// present, proving the middleware actually ran on this route.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(domain.Role)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
