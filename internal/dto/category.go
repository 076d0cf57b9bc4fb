package dto

import "finance-tracker/internal/models"

// ListCategoriesRequest optionally restricts the catalog to one transaction type
type ListCategoriesRequest struct {
	Type string `query:"type" validate:"omitempty,transaction_type"`
}

// SuggestCategoryRequest asks for a category matching a free-text description
type SuggestCategoryRequest struct {
	Type        string `query:"type" validate:"required,transaction_type"`
	Description string `query:"description" validate:"required,max=255"`
}

// CategoryListResponse lists catalog entries in catalog order
type CategoryListResponse struct {
	Categories []models.CategoryDetails `json:"categories"`
}
