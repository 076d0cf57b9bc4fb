package services

import (
	"log/slog"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
)

type dashboardService struct {
	store   repositories.StoreInterface
	metrics MetricsRecorderInterface
}

// NewDashboardService creates a new DashboardServiceInterface instance
func NewDashboardService(store repositories.StoreInterface, metrics MetricsRecorderInterface) DashboardServiceInterface {
	return &dashboardService{
		store:   store,
		metrics: metricsOrNoop(metrics),
	}
}

func (s *dashboardService) Totals() models.Totals {
	return computeTotals(s.store.Transactions())
}

// MonthOverMonthDelta compares the all-time balance against the balance of the month before reference
func (s *dashboardService) MonthOverMonthDelta(reference time.Time) models.MonthOverMonth {
	return computeMonthOverMonth(s.store.Transactions(), reference)
}

func (s *dashboardService) ExpenseBreakdown() []models.CategoryBreakdown {
	return computeExpenseBreakdown(s.store.Transactions())
}

// Dashboard computes every view from a single snapshot
func (s *dashboardService) Dashboard(reference time.Time, recentLimit int) *models.Dashboard {
	start := time.Now()
	transactions, budgets := s.store.Snapshot()

	if recentLimit <= 0 {
		recentLimit = DefaultRecentTransactionsLimit
	}

	totals := computeTotals(transactions)
	recent := append([]models.Transaction(nil), transactions...)
	sortNewestFirst(recent)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	dashboard := &models.Dashboard{
		Totals:             totals,
		MonthOverMonth:     computeMonthOverMonth(transactions, reference),
		ExpenseBreakdown:   computeExpenseBreakdown(transactions),
		BudgetOverview:     buildBudgetOverview(budgets, transactions),
		RecentTransactions: recent,
	}

	s.metrics.RecordProcessingTime("dashboard", time.Since(start))
	recordCollectionGauges(s.metrics, transactions)

	slog.Debug("dashboard generated",
		"transactions", len(transactions),
		"budgets", len(budgets),
		"reference", reference.Format(models.DateLayout),
	)

	return dashboard
}
