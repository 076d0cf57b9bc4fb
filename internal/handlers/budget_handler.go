package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles per-category budget requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// UpsertBudget creates or replaces the budget for the category in the path
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	var req dto.UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		slog.Warn("invalid budget payload", "client_ip", getClientIP(c), "error", err)
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Upsert(req.Category, req.Amount)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    budget,
		Message: "Budget saved",
	})
}

// ListBudgets returns budgets in the order they were first set
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	budgets := h.budgetService.List()
	return c.JSON(http.StatusOK, dto.BudgetListResponse{
		Budgets: budgets,
		Total:   len(budgets),
	})
}

// GetBudget returns one budget with its spending so far
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	category := c.Param("category")

	budget, err := h.budgetService.Get(category)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	remaining, err := h.budgetService.Remaining(category)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	ratio, err := h.budgetService.ConsumptionRatio(category)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetResponse{
		Budget:           *budget,
		CategoryDetails:  models.LookupCategory(category),
		Spent:            h.budgetService.Spent(category),
		Remaining:        remaining,
		ConsumptionRatio: ratio,
	})
}

// BudgetOverview reports spending progress for every budget
func (h *BudgetHandler) BudgetOverview(c echo.Context) error {
	overview := h.budgetService.Overview()

	over := 0
	for _, status := range overview {
		if status.IsOver() {
			over++
		}
	}

	return c.JSON(http.StatusOK, dto.BudgetOverviewResponse{
		Budgets:   overview,
		OverCount: over,
	})
}

// DeleteBudget removes the budget for a category. Missing budgets succeed without effect.
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	if err := h.budgetService.Delete(c.Param("category")); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) handleServiceError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrBudgetNotFound) {
		return SendError(c, apierrors.BudgetNotFound)
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Field {
		case "amount":
			return SendError(c, apierrors.BudgetInvalidAmount)
		case "category":
			return SendError(c, apierrors.BudgetInvalidCategory)
		}
		return SendError(c, apierrors.BudgetValidationFailed, apierrors.WithDetails(validationErr.Field+": "+validationErr.Message))
	}

	slog.Error("budget request failed", "trace_id", getTraceID(c), "error", err)
	return SendStorageError(c, err)
}
