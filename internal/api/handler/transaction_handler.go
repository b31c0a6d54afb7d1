package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/api/metrics"
	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type createTransactionRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gte=0"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Type        string  `json:"type"        validate:"required,oneof=income expense saving"`
}

type updateTransactionRequest struct {
	Amount      *float64 `json:"amount,omitempty"      validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Date        *string  `json:"date,omitempty"        validate:"omitempty,datetime=2006-01-02"`
	CategoryID  *string  `json:"category_id,omitempty"`
}

// Create records a transaction. The referenced category must exist and belong
// to the caller.
//
// @Summary      Record a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      createTransactionRequest  true  "Transaction details"
// @Success      200   {object}  domain.Transaction
// @Failure      404   {object}  errorResponse  "category not found or foreign"
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Create(c.Request().Context(), userID, ports.TransactionCreateInput{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
		Type:        domain.CategoryType(req.Type),
	})
	if err != nil {
		return err
	}

	metrics.TransactionsCreatedTotal.WithLabelValues(string(tx.Type)).Inc()
	return c.JSON(http.StatusOK, tx)
}

// List returns the caller's transactions; admins see everyone's.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	transactions, err := h.service.List(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tx, err := h.service.Get(c.Request().Context(), userID, role, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.TransactionUpdateInput{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "transaction deleted"})
}
