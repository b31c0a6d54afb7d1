package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Name  string `json:"name"  validate:"required"`
	Type  string `json:"type"  validate:"required,oneof=income expense saving"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1"`
	Type  *string `json:"type,omitempty"  validate:"omitempty,oneof=income expense saving"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), userID, ports.CategoryCreateInput{
		Name:  req.Name,
		Type:  domain.CategoryType(req.Type),
		Color: req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	categories, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CategoryUpdateInput{Name: req.Name, Color: req.Color}
	if req.Type != nil {
		categoryType := domain.CategoryType(*req.Type)
		in.Type = &categoryType
	}

	category, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category and every transaction referencing it.
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted"})
}
