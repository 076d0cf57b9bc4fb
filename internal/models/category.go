package models

// Expense categories
const (
	CategoryFood           = "food"
	CategoryHousing        = "housing"
	CategoryTransportation = "transportation"
	CategoryEntertainment  = "entertainment"
	CategoryShopping       = "shopping"
	CategoryHealthcare     = "healthcare"
	CategoryUtilities      = "utilities"
	CategoryOther          = "other"
)

// Income categories
const (
	CategorySalary      = "salary"
	CategoryFreelance   = "freelance"
	CategoryBusiness    = "business"
	CategoryInvestment  = "investment"
	CategoryGift        = "gift"
	CategoryRental      = "rental"
	CategoryRefund      = "refund"
	CategoryOtherIncome = "other_income"
)

// CategoryDetails is the display information for a catalog entry
type CategoryDetails struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
	Type  TransactionType `json:"type"`
}

var categoryCatalog = []CategoryDetails{
	{Key: CategoryFood, Name: "Food & Dining", Color: "#f72585", Icon: "fas fa-utensils", Type: TransactionTypeExpense},
	{Key: CategoryHousing, Name: "Housing", Color: "#f8961e", Icon: "fas fa-home", Type: TransactionTypeExpense},
	{Key: CategoryTransportation, Name: "Transportation", Color: "#4cc9f0", Icon: "fas fa-car", Type: TransactionTypeExpense},
	{Key: CategoryEntertainment, Name: "Entertainment", Color: "#7209b7", Icon: "fas fa-film", Type: TransactionTypeExpense},
	{Key: CategoryShopping, Name: "Shopping", Color: "#4361ee", Icon: "fas fa-shopping-bag", Type: TransactionTypeExpense},
	{Key: CategoryHealthcare, Name: "Healthcare", Color: "#4ade80", Icon: "fas fa-heartbeat", Type: TransactionTypeExpense},
	{Key: CategoryUtilities, Name: "Utilities", Color: "#ff9e00", Icon: "fas fa-bolt", Type: TransactionTypeExpense},
	{Key: CategoryOther, Name: "Other", Color: "#6c757d", Icon: "fas fa-receipt", Type: TransactionTypeExpense},

	{Key: CategorySalary, Name: "Salary", Color: "#4cc9f0", Icon: "fas fa-money-check", Type: TransactionTypeIncome},
	{Key: CategoryFreelance, Name: "Freelance", Color: "#7209b7", Icon: "fas fa-laptop-code", Type: TransactionTypeIncome},
	{Key: CategoryBusiness, Name: "Business", Color: "#f8961e", Icon: "fas fa-briefcase", Type: TransactionTypeIncome},
	{Key: CategoryInvestment, Name: "Investment", Color: "#4ade80", Icon: "fas fa-chart-line", Type: TransactionTypeIncome},
	{Key: CategoryGift, Name: "Gift", Color: "#f72585", Icon: "fas fa-gift", Type: TransactionTypeIncome},
	{Key: CategoryRental, Name: "Rental Income", Color: "#4361ee", Icon: "fas fa-building", Type: TransactionTypeIncome},
	{Key: CategoryRefund, Name: "Refund", Color: "#ff9e00", Icon: "fas fa-undo", Type: TransactionTypeIncome},
	{Key: CategoryOtherIncome, Name: "Other Income", Color: "#6c757d", Icon: "fas fa-money-bill-wave", Type: TransactionTypeIncome},
}

var categoryIndex = func() map[string]CategoryDetails {
	index := make(map[string]CategoryDetails, len(categoryCatalog))
	for _, details := range categoryCatalog {
		index[details.Key] = details
	}
	return index
}()

// AllCategories returns every catalog entry, expense entries first
func AllCategories() []CategoryDetails {
	out := make([]CategoryDetails, len(categoryCatalog))
	copy(out, categoryCatalog)
	return out
}

// CategoriesForType returns the catalog entries for one transaction type in catalog order
func CategoriesForType(transactionType TransactionType) []CategoryDetails {
	var out []CategoryDetails
	for _, details := range categoryCatalog {
		if details.Type == transactionType {
			out = append(out, details)
		}
	}
	return out
}

// LookupCategory never fails: unknown keys get the generic "other" entry
func LookupCategory(key string) CategoryDetails {
	if details, ok := categoryIndex[key]; ok {
		return details
	}
	return categoryIndex[CategoryOther]
}

// IsKnownCategory checks if a key is in the catalog
func IsKnownCategory(key string) bool {
	_, ok := categoryIndex[key]
	return ok
}

// IsValidCategoryForType checks that a known key belongs to the given type
func IsValidCategoryForType(key string, transactionType TransactionType) bool {
	details, ok := categoryIndex[key]
	return ok && details.Type == transactionType
}

// DefaultCategoryForType returns the catch-all key for a type
func DefaultCategoryForType(transactionType TransactionType) string {
	if transactionType == TransactionTypeIncome {
		return CategoryOtherIncome
	}
	return CategoryOther
}

// CategorySuggestion is the result of matching a description against the catalog
type CategorySuggestion struct {
	Category   string          `json:"category"`
	Details    CategoryDetails `json:"details"`
	Confidence float64         `json:"confidence"`
	Matched    string          `json:"matched,omitempty"`
}
