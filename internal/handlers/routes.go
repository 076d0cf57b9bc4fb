package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Health       *HealthCheckHandler
	Transactions *TransactionHandler
	Budgets      *BudgetHandler
	Dashboard    *DashboardHandler
	Categories   *CategoryHandler
}

// RegisterRoutes mounts the API under /api/v1. metrics may be nil.
func RegisterRoutes(e *echo.Echo, h Handlers, metrics http.Handler) {
	e.GET("/health", h.Health.HealthCheck)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := e.Group("/api/v1")

	api.GET("/categories", h.Categories.ListCategories)
	api.GET("/categories/suggest", h.Categories.SuggestCategory)
	api.GET("/categories/:key", h.Categories.GetCategory)

	api.POST("/transactions", h.Transactions.CreateTransaction)
	api.GET("/transactions", h.Transactions.ListTransactions)
	api.GET("/transactions/recent", h.Transactions.RecentTransactions)
	api.DELETE("/transactions", h.Transactions.ClearTransactions)
	api.DELETE("/transactions/:id", h.Transactions.DeleteTransaction)

	api.GET("/budgets", h.Budgets.ListBudgets)
	api.GET("/budgets/overview", h.Budgets.BudgetOverview)
	api.GET("/budgets/:category", h.Budgets.GetBudget)
	api.PUT("/budgets/:category", h.Budgets.UpsertBudget)
	api.DELETE("/budgets/:category", h.Budgets.DeleteBudget)

	api.GET("/dashboard", h.Dashboard.GetDashboard)
	api.GET("/dashboard/totals", h.Dashboard.GetTotals)
	api.GET("/dashboard/month-over-month", h.Dashboard.GetMonthOverMonth)
	api.GET("/dashboard/breakdown", h.Dashboard.GetExpenseBreakdown)
}
