package dto

import (
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// UpsertBudgetRequest sets the limit for the category in the path
type UpsertBudgetRequest struct {
	Category string          `param:"category" json:"-" validate:"required,category_key"`
	Amount   decimal.Decimal `json:"amount" validate:"required,positive_amount"`
}

// BudgetResponse is a budget with its current spending
type BudgetResponse struct {
	models.Budget
	CategoryDetails  models.CategoryDetails `json:"category_details"`
	Spent            decimal.Decimal        `json:"spent"`
	Remaining        decimal.Decimal        `json:"remaining"`
	ConsumptionRatio decimal.Decimal        `json:"consumption_ratio"`
}

// BudgetListResponse lists budgets in insertion order
type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
	Total   int             `json:"total"`
}

// BudgetOverviewResponse lists spending progress for every budget
type BudgetOverviewResponse struct {
	Budgets   []models.BudgetStatus `json:"budgets"`
	OverCount int                   `json:"over_count"`
}
