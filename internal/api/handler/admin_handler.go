package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

// AdminHandler serves the user-management surface. Role gating happens in the
// router via the RequireRole middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type adminUserUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=2"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=user admin"`
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req adminUserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.AdminUserUpdateInput{Username: req.Username, Email: req.Email}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and cascades deletion of everything it owns.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

func (h *AdminHandler) ToggleUserStatus(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.ToggleUserStatus(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "user status updated", "is_active": user.IsActive})
}

type adminChangePasswordRequest struct {
	UserID      string `json:"user_id"      validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var req adminChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), req.UserID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}
