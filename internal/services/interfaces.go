package services

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionServiceInterface records and removes income and expense transactions
type TransactionServiceInterface interface {
	Add(input AddTransactionInput) (*models.Transaction, error)
	Delete(id int64) error
	ClearAll() error
	Query(filters models.TransactionFilters) []models.Transaction
	List() []models.Transaction
	Recent(limit int) []models.Transaction
}

// BudgetServiceInterface manages per-category spending limits
type BudgetServiceInterface interface {
	Upsert(category string, amount decimal.Decimal) (*models.Budget, error)
	Delete(category string) error
	Get(category string) (*models.Budget, error)
	List() []models.Budget
	Spent(category string) decimal.Decimal
	Remaining(category string) (decimal.Decimal, error)
	ConsumptionRatio(category string) (decimal.Decimal, error)
	Overview() []models.BudgetStatus
}

// DashboardServiceInterface derives read-only views over the stored collections
type DashboardServiceInterface interface {
	Totals() models.Totals
	MonthOverMonthDelta(reference time.Time) models.MonthOverMonth
	ExpenseBreakdown() []models.CategoryBreakdown
	Dashboard(reference time.Time, recentLimit int) *models.Dashboard
}

// CategoryServiceInterface exposes the fixed category catalog
type CategoryServiceInterface interface {
	All() []models.CategoryDetails
	ForType(transactionType models.TransactionType) ([]models.CategoryDetails, error)
	Lookup(key string) models.CategoryDetails
	Suggest(transactionType models.TransactionType, description string) (*models.CategorySuggestion, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
