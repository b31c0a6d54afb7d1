package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// RequireRole gates a route group on the caller's role claim. Every
// admin-gated route reuses this single check rather than comparing role
// strings in handlers.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)
			if _, ok := allowed[role]; !ok {
				return domain.ErrNotAdmin
			}
			return next(c)
		}
	}
}
