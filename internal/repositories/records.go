package repositories

import (
	"encoding/json"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// transactionRecord is the persisted shape of a transaction. Amounts are bare JSON numbers.
type transactionRecord struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

type budgetRecord struct {
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
}

func newTransactionRecord(t models.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      json.Number(t.Amount.String()),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.String(),
	}
}

func (r transactionRecord) toModel() (models.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		ID:          r.ID,
		Type:        models.TransactionType(r.Type),
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}

	return t, nil
}

func newBudgetRecord(b models.Budget) budgetRecord {
	return budgetRecord{
		Category: b.Category,
		Amount:   json.Number(b.Amount.String()),
	}
}

func (r budgetRecord) toModel() (models.Budget, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return models.Budget{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	b := models.Budget{Category: r.Category, Amount: amount}
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}

	return b, nil
}

func encodeTransactions(transactions []models.Transaction) (string, error) {
	records := make([]transactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, newTransactionRecord(t))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode transactions: %w", err)
	}
	return string(data), nil
}

func encodeBudgets(budgets []models.Budget) (string, error) {
	records := make([]budgetRecord, 0, len(budgets))
	for _, b := range budgets {
		records = append(records, newBudgetRecord(b))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode budgets: %w", err)
	}
	return string(data), nil
}

// decodeTransactions returns the valid records and the number of records that were skipped
func decodeTransactions(raw string) ([]models.Transaction, int, error) {
	var records []transactionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	skipped := 0
	for _, r := range records {
		t, err := r.toModel()
		if err != nil {
			skipped++
			continue
		}
		transactions = append(transactions, t)
	}

	return transactions, skipped, nil
}

func decodeBudgets(raw string) ([]models.Budget, int, error) {
	var records []budgetRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode budgets: %w", err)
	}

	budgets := make([]models.Budget, 0, len(records))
	seen := make(map[string]int, len(records))
	skipped := 0
	for _, r := range records {
		b, err := r.toModel()
		if err != nil {
			skipped++
			continue
		}
		// a later duplicate wins, keeping the position of the first
		if idx, ok := seen[b.Category]; ok {
			budgets[idx] = b
			skipped++
			continue
		}
		seen[b.Category] = len(budgets)
		budgets = append(budgets, b)
	}

	return budgets, skipped, nil
}
