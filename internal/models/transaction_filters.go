package models

// TransactionFilters contains filtering options for transaction queries.
// Zero values match everything; the date range is inclusive on both ends.
type TransactionFilters struct {
	Type      TransactionType
	Category  string
	StartDate *Date
	EndDate   *Date
}

func (f TransactionFilters) Matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.StartDate != nil && t.Date.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && t.Date.After(f.EndDate.Time) {
		return false
	}
	return true
}
