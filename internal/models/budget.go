package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one expense category
type Budget struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (b *Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return NewValidationError("category", "is required")
	}

	if !b.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}

	return nil
}
