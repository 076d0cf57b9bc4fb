package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	validDate := NewDate(2024, time.March, 15)

	tests := []struct {
		name        string
		transaction Transaction
		wantErr     bool
		field       string
	}{
		{
			name: "valid income transaction",
			transaction: Transaction{
				Type:        TransactionTypeIncome,
				Amount:      decimal.NewFromFloat(2500.00),
				Category:    CategorySalary,
				Description: "Monthly salary",
				Date:        validDate,
			},
			wantErr: false,
		},
		{
			name: "valid expense transaction",
			transaction: Transaction{
				Type:        TransactionTypeExpense,
				Amount:      decimal.NewFromFloat(42.10),
				Category:    CategoryFood,
				Description: "Groceries",
				Date:        validDate,
			},
			wantErr: false,
		},
		{
			name: "unknown category is tolerated",
			transaction: Transaction{
				Type:        TransactionTypeExpense,
				Amount:      decimal.NewFromInt(10),
				Category:    "pets",
				Description: "Dog food",
				Date:        validDate,
			},
			wantErr: false,
		},
		{
			name: "invalid type",
			transaction: Transaction{
				Type:        "transfer",
				Amount:      decimal.NewFromInt(10),
				Description: "Something",
				Date:        validDate,
			},
			wantErr: true,
			field:   "type",
		},
		{
			name: "zero amount",
			transaction: Transaction{
				Type:        TransactionTypeExpense,
				Amount:      decimal.Zero,
				Description: "Something",
				Date:        validDate,
			},
			wantErr: true,
			field:   "amount",
		},
		{
			name: "negative amount",
			transaction: Transaction{
				Type:        TransactionTypeExpense,
				Amount:      decimal.NewFromInt(-5),
				Description: "Something",
				Date:        validDate,
			},
			wantErr: true,
			field:   "amount",
		},
		{
			name: "blank description",
			transaction: Transaction{
				Type:        TransactionTypeIncome,
				Amount:      decimal.NewFromInt(5),
				Description: "   ",
				Date:        validDate,
			},
			wantErr: true,
			field:   "description",
		},
		{
			name: "missing date",
			transaction: Transaction{
				Type:        TransactionTypeIncome,
				Amount:      decimal.NewFromInt(5),
				Description: "Gift from grandma",
			},
			wantErr: true,
			field:   "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidationFailed))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestTransaction_TypeHelpers(t *testing.T) {
	income := Transaction{Type: TransactionTypeIncome}
	expense := Transaction{Type: TransactionTypeExpense}

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.False(t, expense.IsIncome())

	assert.True(t, IsValidTransactionType(TransactionTypeIncome))
	assert.True(t, IsValidTransactionType(TransactionTypeExpense))
	assert.False(t, IsValidTransactionType("credit"))
	assert.False(t, IsValidTransactionType(""))
}

func TestBudget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
		field   string
	}{
		{"valid budget", Budget{Category: CategoryFood, Amount: decimal.NewFromInt(300)}, false, ""},
		{"empty category", Budget{Category: "", Amount: decimal.NewFromInt(300)}, true, "category"},
		{"zero amount", Budget{Category: CategoryFood, Amount: decimal.Zero}, true, "amount"},
		{"negative amount", Budget{Category: CategoryFood, Amount: decimal.NewFromInt(-1)}, true, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestTransactionFilters_Matches(t *testing.T) {
	start := NewDate(2024, time.March, 1)
	end := NewDate(2024, time.March, 31)

	txn := Transaction{
		Type:     TransactionTypeExpense,
		Category: CategoryFood,
		Date:     NewDate(2024, time.March, 31),
	}

	assert.True(t, TransactionFilters{}.Matches(txn))
	assert.True(t, TransactionFilters{Type: TransactionTypeExpense}.Matches(txn))
	assert.False(t, TransactionFilters{Type: TransactionTypeIncome}.Matches(txn))
	assert.True(t, TransactionFilters{Category: CategoryFood}.Matches(txn))
	assert.False(t, TransactionFilters{Category: CategoryHousing}.Matches(txn))
	assert.True(t, TransactionFilters{StartDate: &start, EndDate: &end}.Matches(txn), "end date is inclusive")

	txn.Date = start
	assert.True(t, TransactionFilters{StartDate: &start, EndDate: &end}.Matches(txn), "start date is inclusive")

	txn.Date = NewDate(2024, time.April, 1)
	assert.False(t, TransactionFilters{StartDate: &start, EndDate: &end}.Matches(txn))
}
