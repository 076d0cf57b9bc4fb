package repositories

import (
	"finance-tracker/internal/models"
)

// StoreInterface owns the transaction and budget collections and mirrors them to the key/value store.
// Readers always receive copies.
type StoreInterface interface {
	Load() error
	Transactions() []models.Transaction
	Budgets() []models.Budget
	Snapshot() ([]models.Transaction, []models.Budget)
	MutateTransactions(fn func([]models.Transaction) ([]models.Transaction, error)) error
	MutateBudgets(fn func([]models.Budget) ([]models.Budget, error)) error
	SaveTransactions() error
	SaveBudgets() error
}
