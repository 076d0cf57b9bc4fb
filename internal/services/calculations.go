package services

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

func computeTotals(transactions []models.Transaction) models.Totals {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case models.TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return models.Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

func spentInCategory(transactions []models.Transaction, category string) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range transactions {
		if t.IsExpense() && t.Category == category {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

var one = decimal.NewFromInt(1)

// consumptionRatio is spent/amount clamped to [0, 1]. Only display percentages are rounded.
func consumptionRatio(spent, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !spent.IsPositive() {
		return decimal.Zero
	}

	return decimal.Min(spent.Div(amount), one)
}

func buildBudgetStatus(budget models.Budget, transactions []models.Transaction) models.BudgetStatus {
	spent := spentInCategory(transactions, budget.Category)
	remaining := budget.Amount.Sub(spent)
	ratio := consumptionRatio(spent, budget.Amount)

	status := models.BudgetStatusUnder
	if remaining.IsNegative() {
		status = models.BudgetStatusOver
	}

	return models.BudgetStatus{
		Category:         budget.Category,
		Details:          models.LookupCategory(budget.Category),
		Amount:           budget.Amount,
		Spent:            spent,
		Remaining:        remaining,
		ConsumptionRatio: ratio,
		PercentUsed:      ratio.Mul(oneHundred).Round(1),
		Status:           status,
	}
}

// priorMonth returns the calendar month before the reference, crossing year boundaries
func priorMonth(reference time.Time) (int, time.Month) {
	first := time.Date(reference.Year(), reference.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	return first.Year(), first.Month()
}

func computeMonthOverMonth(transactions []models.Transaction, reference time.Time) models.MonthOverMonth {
	year, month := priorMonth(reference)

	priorIncome := decimal.Zero
	priorExpenses := decimal.Zero
	for _, t := range transactions {
		if !t.Date.InMonth(year, month) {
			continue
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			priorIncome = priorIncome.Add(t.Amount)
		case models.TransactionTypeExpense:
			priorExpenses = priorExpenses.Add(t.Amount)
		}
	}

	priorBalance := priorIncome.Sub(priorExpenses)
	current := computeTotals(transactions).Balance
	change := current.Sub(priorBalance)

	result := models.MonthOverMonth{
		PriorYear:      year,
		PriorMonth:     month,
		PriorIncome:    priorIncome,
		PriorExpenses:  priorExpenses,
		PriorBalance:   priorBalance,
		CurrentBalance: current,
		AbsoluteChange: change,
	}

	switch {
	case len(transactions) == 0:
		result.Direction = models.DirectionNoHistory
	case priorBalance.IsZero():
		result.Direction = models.DirectionNoPriorData
	default:
		percent := change.Div(priorBalance.Abs()).Mul(oneHundred).Round(1)
		result.PercentChange = &percent
		switch change.Sign() {
		case 1:
			result.Direction = models.DirectionUp
		case -1:
			result.Direction = models.DirectionDown
		default:
			result.Direction = models.DirectionFlat
		}
	}

	return result
}

// computeExpenseBreakdown groups expenses by category in first-seen order
func computeExpenseBreakdown(transactions []models.Transaction) []models.CategoryBreakdown {
	totals := make(map[string]decimal.Decimal)
	var order []string
	total := decimal.Zero

	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
			totals[t.Category] = decimal.Zero
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	breakdown := make([]models.CategoryBreakdown, 0, len(order))
	if total.IsZero() {
		return breakdown
	}

	for _, category := range order {
		amount := totals[category]
		breakdown = append(breakdown, models.CategoryBreakdown{
			Category:       category,
			Details:        models.LookupCategory(category),
			Amount:         amount,
			PercentOfTotal: amount.Div(total).Mul(oneHundred).Round(1),
		})
	}

	return breakdown
}
