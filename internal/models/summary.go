package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals contains all-time income, expenses and their difference
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// Direction is five-valued. Up, down and flat follow the sign of the change. NoHistory means
// there are no transactions at all, and NoPriorData means the prior month's balance is zero so
// no percentage can be derived.
type Direction string

const (
	DirectionUp          Direction = "up"
	DirectionDown        Direction = "down"
	DirectionFlat        Direction = "flat"
	DirectionNoHistory   Direction = "no-history"
	DirectionNoPriorData Direction = "no-prior-data"
)

// MonthOverMonth compares the all-time balance with the balance of the previous calendar month.
// PercentChange is nil when the prior balance is zero.
type MonthOverMonth struct {
	PriorYear      int              `json:"prior_year"`
	PriorMonth     time.Month       `json:"prior_month"`
	PriorIncome    decimal.Decimal  `json:"prior_income"`
	PriorExpenses  decimal.Decimal  `json:"prior_expenses"`
	PriorBalance   decimal.Decimal  `json:"prior_balance"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	AbsoluteChange decimal.Decimal  `json:"absolute_change"`
	PercentChange  *decimal.Decimal `json:"percent_change"`
	Direction      Direction        `json:"direction"`
}

// CategoryBreakdown is one category's share of total expenses
type CategoryBreakdown struct {
	Category       string          `json:"category"`
	Details        CategoryDetails `json:"details"`
	Amount         decimal.Decimal `json:"amount"`
	PercentOfTotal decimal.Decimal `json:"percent_of_total"`
}

const (
	BudgetStatusUnder = "under"
	BudgetStatusOver  = "over"
)

// BudgetStatus is the progress of spending against one budget
type BudgetStatus struct {
	Category         string          `json:"category"`
	Details          CategoryDetails `json:"details"`
	Amount           decimal.Decimal `json:"amount"`
	Spent            decimal.Decimal `json:"spent"`
	Remaining        decimal.Decimal `json:"remaining"`
	ConsumptionRatio decimal.Decimal `json:"consumption_ratio"`
	PercentUsed      decimal.Decimal `json:"percent_used"`
	Status           string          `json:"status"`
}

// IsOver returns true when spending exceeded the budget amount
func (b BudgetStatus) IsOver() bool {
	return b.Status == BudgetStatusOver
}

// Dashboard bundles every derived view in one response
type Dashboard struct {
	Totals             Totals              `json:"totals"`
	MonthOverMonth     MonthOverMonth      `json:"month_over_month"`
	ExpenseBreakdown   []CategoryBreakdown `json:"expense_breakdown"`
	BudgetOverview     []BudgetStatus      `json:"budget_overview"`
	RecentTransactions []Transaction       `json:"recent_transactions"`
}
