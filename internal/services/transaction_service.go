package services

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

const DefaultRecentTransactionsLimit = 5

var ErrNothingToClear = errors.New("no transactions to clear")

// AddTransactionInput carries the caller-supplied fields of a new transaction.
// An empty category falls back to the catch-all category of the type.
type AddTransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        models.Date
}

type transactionService struct {
	store   repositories.StoreInterface
	metrics MetricsRecorderInterface
	now     func() time.Time
	lastID  int64
}

// NewTransactionService creates a new TransactionServiceInterface instance
func NewTransactionService(store repositories.StoreInterface, metrics MetricsRecorderInterface) TransactionServiceInterface {
	return newTransactionService(store, metrics, time.Now)
}

func newTransactionService(store repositories.StoreInterface, metrics MetricsRecorderInterface, now func() time.Time) *transactionService {
	return &transactionService{
		store:   store,
		metrics: metricsOrNoop(metrics),
		now:     now,
	}
}

// nextID derives an ID from the wall clock in milliseconds, bumped past every ID
// already issued or stored. Only called under the store's write lock.
func (s *transactionService) nextID(existing []models.Transaction) int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for _, t := range existing {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	s.lastID = id
	return id
}

func (s *transactionService) Add(input AddTransactionInput) (*models.Transaction, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.DefaultCategoryForType(input.Type)
	}

	txn := models.Transaction{
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
	}

	if err := txn.Validate(); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			s.metrics.IncrementCounter("validation.rejected", map[string]string{"entity": "transaction", "field": validationErr.Field})
		}
		slog.Warn("transaction rejected", "error", err)
		return nil, err
	}

	if !models.IsValidCategoryForType(txn.Category, txn.Type) {
		slog.Info("transaction category not in catalog for type", "category", txn.Category, "type", txn.Type)
	}

	var updated []models.Transaction
	start := time.Now()
	err := s.store.MutateTransactions(func(current []models.Transaction) ([]models.Transaction, error) {
		txn.ID = s.nextID(current)
		updated = append(current, txn)
		return updated, nil
	})
	s.metrics.RecordProcessingTime("transaction.add", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("store.save.failed", map[string]string{"collection": "transactions"})
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}

	s.metrics.IncrementCounter("transaction.created", map[string]string{"type": string(txn.Type)})
	recordCollectionGauges(s.metrics, updated)
	slog.Info("transaction added",
		"transaction_id", txn.ID,
		"type", txn.Type,
		"category", txn.Category,
		"amount", txn.Amount.String(),
	)

	return &txn, nil
}

// Delete removes the transaction with the given ID. An unknown ID is not an error.
func (s *transactionService) Delete(id int64) error {
	var remaining []models.Transaction
	removed := false
	err := s.store.MutateTransactions(func(current []models.Transaction) ([]models.Transaction, error) {
		before := len(current)
		remaining = slices.DeleteFunc(current, func(t models.Transaction) bool {
			return t.ID == id
		})
		removed = len(remaining) < before
		return remaining, nil
	})
	if err != nil {
		s.metrics.IncrementCounter("store.save.failed", map[string]string{"collection": "transactions"})
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if removed {
		s.metrics.IncrementCounter("transaction.deleted", nil)
		recordCollectionGauges(s.metrics, remaining)
		slog.Info("transaction deleted", "transaction_id", id)
	} else {
		slog.Debug("transaction not found for delete", "transaction_id", id)
	}

	return nil
}

func (s *transactionService) ClearAll() error {
	cleared := 0
	err := s.store.MutateTransactions(func(current []models.Transaction) ([]models.Transaction, error) {
		if len(current) == 0 {
			return nil, ErrNothingToClear
		}
		cleared = len(current)
		return []models.Transaction{}, nil
	})
	if errors.Is(err, ErrNothingToClear) {
		return err
	}
	if err != nil {
		s.metrics.IncrementCounter("store.save.failed", map[string]string{"collection": "transactions"})
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	s.metrics.IncrementCounter("transaction.cleared", nil)
	recordCollectionGauges(s.metrics, nil)
	slog.Info("all transactions cleared", "count", cleared)
	return nil
}

// Query returns the matching transactions in insertion order
func (s *transactionService) Query(filters models.TransactionFilters) []models.Transaction {
	all := s.store.Transactions()
	matched := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if filters.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// List returns every transaction newest first by date. Same-day entries keep insertion order.
func (s *transactionService) List() []models.Transaction {
	transactions := s.store.Transactions()
	sortNewestFirst(transactions)
	return transactions
}

func (s *transactionService) Recent(limit int) []models.Transaction {
	if limit <= 0 {
		limit = DefaultRecentTransactionsLimit
	}

	transactions := s.List()
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions
}

// recordCollectionGauges publishes the stored transaction count and all-time balance
func recordCollectionGauges(metrics MetricsRecorderInterface, transactions []models.Transaction) {
	balance, _ := computeTotals(transactions).Balance.Float64()
	metrics.RecordGauge("balance", balance, nil)
	metrics.RecordGauge("transactions", float64(len(transactions)), nil)
}

func sortNewestFirst(transactions []models.Transaction) {
	slices.SortStableFunc(transactions, func(a, b models.Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
}
