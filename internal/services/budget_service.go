package services

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrBudgetNotFound = errors.New("budget not found")

type budgetService struct {
	store   repositories.StoreInterface
	metrics MetricsRecorderInterface
}

// NewBudgetService creates a new BudgetServiceInterface instance
func NewBudgetService(store repositories.StoreInterface, metrics MetricsRecorderInterface) BudgetServiceInterface {
	return &budgetService{
		store:   store,
		metrics: metricsOrNoop(metrics),
	}
}

// Upsert sets the budget for a category, replacing an existing one in place
func (s *budgetService) Upsert(category string, amount decimal.Decimal) (*models.Budget, error) {
	budget := models.Budget{
		Category: strings.TrimSpace(category),
		Amount:   amount,
	}

	if err := budget.Validate(); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			s.metrics.IncrementCounter("validation.rejected", map[string]string{"entity": "budget", "field": validationErr.Field})
		}
		slog.Warn("budget rejected", "category", category, "error", err)
		return nil, err
	}

	action := "created"
	err := s.store.MutateBudgets(func(current []models.Budget) ([]models.Budget, error) {
		idx := slices.IndexFunc(current, func(b models.Budget) bool {
			return b.Category == budget.Category
		})
		if idx >= 0 {
			action = "updated"
			current[idx] = budget
			return current, nil
		}
		return append(current, budget), nil
	})
	if err != nil {
		s.metrics.IncrementCounter("store.save.failed", map[string]string{"collection": "budgets"})
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.metrics.IncrementCounter("budget.upserted", map[string]string{"action": action})
	slog.Info("budget saved", "category", budget.Category, "amount", budget.Amount.String(), "action", action)

	return &budget, nil
}

// Delete removes the budget for a category. A missing budget is not an error.
func (s *budgetService) Delete(category string) error {
	removed := false
	err := s.store.MutateBudgets(func(current []models.Budget) ([]models.Budget, error) {
		before := len(current)
		current = slices.DeleteFunc(current, func(b models.Budget) bool {
			return b.Category == category
		})
		removed = len(current) < before
		return current, nil
	})
	if err != nil {
		s.metrics.IncrementCounter("store.save.failed", map[string]string{"collection": "budgets"})
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	if removed {
		s.metrics.IncrementCounter("budget.deleted", nil)
		slog.Info("budget deleted", "category", category)
	}

	return nil
}

func (s *budgetService) Get(category string) (*models.Budget, error) {
	for _, b := range s.store.Budgets() {
		if b.Category == category {
			return &b, nil
		}
	}
	return nil, ErrBudgetNotFound
}

func (s *budgetService) List() []models.Budget {
	return s.store.Budgets()
}

// Spent sums expense amounts in the category over all time
func (s *budgetService) Spent(category string) decimal.Decimal {
	return spentInCategory(s.store.Transactions(), category)
}

// Remaining may be negative when spending exceeded the budget
func (s *budgetService) Remaining(category string) (decimal.Decimal, error) {
	transactions, budgets := s.store.Snapshot()
	budget, ok := findBudget(budgets, category)
	if !ok {
		return decimal.Zero, ErrBudgetNotFound
	}
	return budget.Amount.Sub(spentInCategory(transactions, category)), nil
}

// ConsumptionRatio is spent/amount capped at 1
func (s *budgetService) ConsumptionRatio(category string) (decimal.Decimal, error) {
	transactions, budgets := s.store.Snapshot()
	budget, ok := findBudget(budgets, category)
	if !ok {
		return decimal.Zero, ErrBudgetNotFound
	}
	return consumptionRatio(spentInCategory(transactions, category), budget.Amount), nil
}

// Overview reports progress for every budget in budget order
func (s *budgetService) Overview() []models.BudgetStatus {
	transactions, budgets := s.store.Snapshot()
	return buildBudgetOverview(budgets, transactions)
}

func buildBudgetOverview(budgets []models.Budget, transactions []models.Transaction) []models.BudgetStatus {
	overview := make([]models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		overview = append(overview, buildBudgetStatus(b, transactions))
	}
	return overview
}

func findBudget(budgets []models.Budget, category string) (models.Budget, bool) {
	for _, b := range budgets {
		if b.Category == category {
			return b, true
		}
	}
	return models.Budget{}, false
}
