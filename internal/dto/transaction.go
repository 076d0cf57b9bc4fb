package dto

import (
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Transaction Request DTOs

// CreateTransactionRequest represents the request payload for recording income or an expense
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,transaction_type"`
	Amount      decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	Category    string          `json:"category" validate:"omitempty,category_key"`
	Description string          `json:"description" validate:"required,max=255"`
	Date        string          `json:"date" validate:"required,iso_date"`
}

// ListTransactionsRequest holds the optional query filters for listing transactions
type ListTransactionsRequest struct {
	Type      string `query:"type" validate:"omitempty,transaction_type"`
	Category  string `query:"category" validate:"omitempty,category_key"`
	StartDate string `query:"start_date" validate:"omitempty,iso_date"`
	EndDate   string `query:"end_date" validate:"omitempty,iso_date"`
}

// RecentTransactionsRequest limits the recent transactions view
type RecentTransactionsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Transaction Response DTOs

// TransactionResponse is a transaction with its resolved category details
type TransactionResponse struct {
	models.Transaction
	CategoryDetails models.CategoryDetails `json:"category_details"`
}

// TransactionListResponse represents a list of transactions, newest first
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// NewTransactionResponse attaches catalog details to a transaction
func NewTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		Transaction:     t,
		CategoryDetails: models.LookupCategory(t.Category),
	}
}

// NewTransactionListResponse converts a slice of transactions
func NewTransactionListResponse(transactions []models.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		items[i] = NewTransactionResponse(t)
	}
	return TransactionListResponse{Transactions: items, Total: len(items)}
}
