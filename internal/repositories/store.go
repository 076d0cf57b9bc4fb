package repositories

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"finance-tracker/internal/kvstore"
	"finance-tracker/internal/models"
)

const (
	TransactionsKey = "transactions"
	BudgetsKey      = "budgets"
)

// StoreOption configures a Store
type StoreOption func(*Store)

// WithKeyPrefix namespaces both collection keys, e.g. "household:transactions"
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.transactionsKey = prefix + ":" + TransactionsKey
			s.budgetsKey = prefix + ":" + BudgetsKey
		}
	}
}

// Store holds the in-memory collections. All mutations are serialized and persisted in the same step.
type Store struct {
	kv              kvstore.Store
	transactionsKey string
	budgetsKey      string

	mu           sync.RWMutex
	transactions []models.Transaction
	budgets      []models.Budget
}

// NewStore creates a new store backed by kv. Call Load before use.
func NewStore(kv kvstore.Store, opts ...StoreOption) *Store {
	s := &Store{
		kv:              kv,
		transactionsKey: TransactionsKey,
		budgetsKey:      BudgetsKey,
		transactions:    []models.Transaction{},
		budgets:         []models.Budget{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces both collections with the persisted state.
// A missing or unparseable blob yields an empty collection for that key only.
func (s *Store) Load() error {
	transactions, err := s.loadTransactions()
	if err != nil {
		return err
	}

	budgets, err := s.loadBudgets()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.transactions = transactions
	s.budgets = budgets
	s.mu.Unlock()

	slog.Info("store loaded", "transactions", len(transactions), "budgets", len(budgets))
	return nil
}

func (s *Store) loadTransactions() ([]models.Transaction, error) {
	raw, found, err := s.kv.Get(s.transactionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	if !found || raw == "" {
		return []models.Transaction{}, nil
	}

	transactions, skipped, err := decodeTransactions(raw)
	if err != nil {
		slog.Warn("discarding unparseable transactions", "key", s.transactionsKey, "error", err)
		return []models.Transaction{}, nil
	}
	if skipped > 0 {
		slog.Warn("skipped invalid transaction records", "key", s.transactionsKey, "skipped", skipped)
	}

	return transactions, nil
}

func (s *Store) loadBudgets() ([]models.Budget, error) {
	raw, found, err := s.kv.Get(s.budgetsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read budgets: %w", err)
	}
	if !found || raw == "" {
		return []models.Budget{}, nil
	}

	budgets, skipped, err := decodeBudgets(raw)
	if err != nil {
		slog.Warn("discarding unparseable budgets", "key", s.budgetsKey, "error", err)
		return []models.Budget{}, nil
	}
	if skipped > 0 {
		slog.Warn("skipped invalid budget records", "key", s.budgetsKey, "skipped", skipped)
	}

	return budgets, nil
}

// Transactions returns a copy of the transaction collection in insertion order
func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions)
}

// Budgets returns a copy of the budget collection in insertion order
func (s *Store) Budgets() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.budgets)
}

// Snapshot returns copies of both collections taken under one lock
func (s *Store) Snapshot() ([]models.Transaction, []models.Budget) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions), slices.Clone(s.budgets)
}

// MutateTransactions applies fn to a copy of the collection and persists the result.
// The copy replaces the collection only after the write succeeds, so any error means nothing changed.
func (s *Store) MutateTransactions(fn func([]models.Transaction) ([]models.Transaction, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.transactions))
	if err != nil {
		return err
	}
	if next == nil {
		next = []models.Transaction{}
	}
	if err := s.writeTransactions(next); err != nil {
		return err
	}

	s.transactions = next
	return nil
}

// MutateBudgets applies fn to a copy of the collection and persists the result.
// Like MutateTransactions it keeps the old collection when the write fails.
func (s *Store) MutateBudgets(fn func([]models.Budget) ([]models.Budget, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.budgets))
	if err != nil {
		return err
	}
	if next == nil {
		next = []models.Budget{}
	}
	if err := s.writeBudgets(next); err != nil {
		return err
	}

	s.budgets = next
	return nil
}

// SaveTransactions writes the current transaction collection
func (s *Store) SaveTransactions() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeTransactions(s.transactions)
}

// SaveBudgets writes the current budget collection
func (s *Store) SaveBudgets() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeBudgets(s.budgets)
}

func (s *Store) writeTransactions(transactions []models.Transaction) error {
	raw, err := encodeTransactions(transactions)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.transactionsKey, raw); err != nil {
		slog.Error("failed to persist transactions", "key", s.transactionsKey, "error", err)
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

func (s *Store) writeBudgets(budgets []models.Budget) error {
	raw, err := encodeBudgets(budgets)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.budgetsKey, raw); err != nil {
		slog.Error("failed to persist budgets", "key", s.budgetsKey, "error", err)
		return fmt.Errorf("failed to save budgets: %w", err)
	}
	return nil
}
