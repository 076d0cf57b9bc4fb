package services

import (
	"errors"
	"strings"

	"finance-tracker/internal/models"
)

var ErrInvalidCategoryType = errors.New("invalid transaction type for category lookup")

const fuzzyMatchThreshold = 0.8

type categoryService struct {
	keywordPatterns []keywordPattern
}

type keywordPattern struct {
	keywords   []string
	category   string
	confidence float64
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService() CategoryServiceInterface {
	return &categoryService{
		keywordPatterns: initKeywordPatterns(),
	}
}

func (s *categoryService) All() []models.CategoryDetails {
	return models.AllCategories()
}

func (s *categoryService) ForType(transactionType models.TransactionType) ([]models.CategoryDetails, error) {
	if !models.IsValidTransactionType(transactionType) {
		return nil, ErrInvalidCategoryType
	}
	return models.CategoriesForType(transactionType), nil
}

func (s *categoryService) Lookup(key string) models.CategoryDetails {
	return models.LookupCategory(key)
}

// Suggest picks a catalog category for a description, falling back to the type's catch-all.
// Keyword containment wins over fuzzy word matches.
func (s *categoryService) Suggest(transactionType models.TransactionType, description string) (*models.CategorySuggestion, error) {
	if !models.IsValidTransactionType(transactionType) {
		return nil, ErrInvalidCategoryType
	}

	category, confidence, matched := s.categorizeByKeyword(transactionType, description)
	if confidence == 0 {
		category, confidence, matched = s.categorizeByFuzzyWord(transactionType, description)
	}
	if confidence == 0 {
		category = models.DefaultCategoryForType(transactionType)
	}

	return &models.CategorySuggestion{
		Category:   category,
		Details:    models.LookupCategory(category),
		Confidence: confidence,
		Matched:    matched,
	}, nil
}

func (s *categoryService) categorizeByKeyword(transactionType models.TransactionType, description string) (string, float64, string) {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return "", 0, ""
	}

	for _, pattern := range s.keywordPatterns {
		if !models.IsValidCategoryForType(pattern.category, transactionType) {
			continue
		}
		for _, keyword := range pattern.keywords {
			if containsIgnoreCase(normalized, keyword) {
				return pattern.category, pattern.confidence, keyword
			}
		}
	}

	return "", 0, ""
}

// categorizeByFuzzyWord tolerates typos such as "resturant" or "netflx"
func (s *categoryService) categorizeByFuzzyWord(transactionType models.TransactionType, description string) (string, float64, string) {
	words := strings.Fields(strings.ToLower(description))

	var bestCategory, bestKeyword string
	var bestScore, bestConfidence float64

	for _, word := range words {
		word = normalizeForMatching(word)
		if len(word) < 4 {
			continue
		}
		for _, pattern := range s.keywordPatterns {
			if !models.IsValidCategoryForType(pattern.category, transactionType) {
				continue
			}
			for _, keyword := range pattern.keywords {
				if strings.Contains(keyword, " ") {
					continue
				}
				score := calculateSimilarity(word, keyword)
				if score >= fuzzyMatchThreshold && score > bestScore {
					bestScore = score
					bestCategory = pattern.category
					bestKeyword = keyword
					bestConfidence = pattern.confidence * score
				}
			}
		}
	}

	return bestCategory, bestConfidence, bestKeyword
}

func initKeywordPatterns() []keywordPattern {
	return []keywordPattern{
		{
			keywords:   []string{"restaurant", "grocery", "groceries", "supermarket", "cafe", "coffee", "lunch", "dinner", "breakfast", "pizza", "takeout", "bakery"},
			category:   models.CategoryFood,
			confidence: 0.90,
		},
		{
			keywords:   []string{"rent", "mortgage", "landlord", "property tax", "hoa", "home insurance", "furniture"},
			category:   models.CategoryHousing,
			confidence: 0.90,
		},
		{
			keywords:   []string{"uber", "lyft", "taxi", "fuel", "gas station", "petrol", "parking", "train", "metro", "bus", "toll", "car service"},
			category:   models.CategoryTransportation,
			confidence: 0.90,
		},
		{
			keywords:   []string{"netflix", "spotify", "cinema", "movie", "concert", "theater", "theatre", "game", "streaming", "tickets"},
			category:   models.CategoryEntertainment,
			confidence: 0.85,
		},
		{
			keywords:   []string{"amazon", "clothes", "clothing", "shoes", "electronics", "mall", "store", "online order"},
			category:   models.CategoryShopping,
			confidence: 0.80,
		},
		{
			keywords:   []string{"pharmacy", "doctor", "hospital", "dentist", "medicine", "clinic", "health insurance", "gym"},
			category:   models.CategoryHealthcare,
			confidence: 0.90,
		},
		{
			keywords:   []string{"electricity", "electric bill", "water bill", "internet", "phone bill", "mobile recharge", "utility", "utilities"},
			category:   models.CategoryUtilities,
			confidence: 0.90,
		},
		{
			keywords:   []string{"salary", "payroll", "paycheck", "wage", "direct deposit", "employer"},
			category:   models.CategorySalary,
			confidence: 0.95,
		},
		{
			keywords:   []string{"freelance", "contract work", "consulting", "invoice", "upwork", "fiverr"},
			category:   models.CategoryFreelance,
			confidence: 0.90,
		},
		{
			keywords:   []string{"business", "sales revenue", "client payment", "shop income"},
			category:   models.CategoryBusiness,
			confidence: 0.80,
		},
		{
			keywords:   []string{"dividend", "interest", "stock", "capital gain", "mutual fund", "crypto"},
			category:   models.CategoryInvestment,
			confidence: 0.90,
		},
		{
			keywords:   []string{"gift", "birthday", "present", "wedding"},
			category:   models.CategoryGift,
			confidence: 0.85,
		},
		{
			keywords:   []string{"tenant", "rental", "lease payment", "rent received"},
			category:   models.CategoryRental,
			confidence: 0.90,
		},
		{
			keywords:   []string{"refund", "reimbursement", "cashback", "return credit"},
			category:   models.CategoryRefund,
			confidence: 0.90,
		},
	}
}

// calculateSimilarity calculates the similarity score between two strings using Levenshtein distance
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := max(len(s1), len(s2))

	return 1.0 - float64(distance)/float64(maxLen)
}

func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	previous := make([]int, len(s2)+1)
	current := make([]int, len(s2)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		current[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			current[j] = min(
				previous[j]+1,      // deletion
				current[j-1]+1,     // insertion
				previous[j-1]+cost, // substitution
			)
		}
		previous, current = current, previous
	}

	return previous[len(s2)]
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// normalizeForMatching strips punctuation commonly found in bank descriptions
func normalizeForMatching(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer("-", "", "_", "", "'", "", ".", "", ",", "", "*", "", "#", "")
	return replacer.Replace(s)
}
