package handlers

import (
	"errors"
	"net/http"
	"time"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the derived read-only views
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
	recentLimit      int
	now              func() time.Time
}

func NewDashboardHandler(dashboardService services.DashboardServiceInterface, recentLimit int) *DashboardHandler {
	if recentLimit <= 0 {
		recentLimit = services.DefaultRecentTransactionsLimit
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		recentLimit:      recentLimit,
		now:              time.Now,
	}
}

// GetDashboard returns totals, month-over-month change, expense breakdown, budget overview
// and recent transactions in one response. The reference month defaults to today.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	reference, err := h.bindReference(c)
	if err != nil {
		return h.referenceError(c, err)
	}

	limit := getIntParam(c, "recent_limit", h.recentLimit)
	if limit <= 0 {
		limit = h.recentLimit
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: h.dashboardService.Dashboard(reference, limit),
		Meta: map[string]string{
			"reference_date": models.DateOf(reference).String(),
		},
	})
}

// GetTotals returns all-time income, expenses and balance
func (h *DashboardHandler) GetTotals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.Totals())
}

// GetMonthOverMonth compares the current balance with the month before the reference date
func (h *DashboardHandler) GetMonthOverMonth(c echo.Context) error {
	reference, err := h.bindReference(c)
	if err != nil {
		return h.referenceError(c, err)
	}
	return c.JSON(http.StatusOK, h.dashboardService.MonthOverMonthDelta(reference))
}

// GetExpenseBreakdown returns each expense category's share of total spending
func (h *DashboardHandler) GetExpenseBreakdown(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.ExpenseBreakdown())
}

var (
	errInvalidQuery         = errors.New("invalid query parameters")
	errInvalidReferenceDate = errors.New("invalid reference date")
)

// bindReference resolves the reference_date query parameter, defaulting to now
func (h *DashboardHandler) bindReference(c echo.Context) (time.Time, error) {
	var req dto.DashboardRequest
	if err := c.Bind(&req); err != nil {
		return time.Time{}, errInvalidQuery
	}

	if err := c.Validate(req); err != nil {
		return time.Time{}, err
	}

	if req.ReferenceDate == "" {
		return h.now(), nil
	}

	date, err := models.ParseDate(req.ReferenceDate)
	if err != nil {
		return time.Time{}, errInvalidReferenceDate
	}
	return date.Time, nil
}

func (h *DashboardHandler) referenceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errInvalidQuery):
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	case errors.Is(err, errInvalidReferenceDate):
		return SendError(c, apierrors.ValidationInvalidDate)
	default:
		return err
	}
}
