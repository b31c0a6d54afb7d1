package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/ports"
)

type StatisticsHandler struct {
	service ports.StatisticsService
}

func NewStatisticsHandler(service ports.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// Overview returns the aggregate ledger view for the caller.
//
// @Summary      Ledger statistics
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  domain.Statistics
// @Failure      401  {object}  errorResponse
// @Router       /statistics [get]
func (h *StatisticsHandler) Overview(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Overview(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
