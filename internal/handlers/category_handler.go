package handlers

import (
	"errors"
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler exposes the category catalog
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns the whole catalog or the entries of one transaction type
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	var req dto.ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	if req.Type == "" {
		return c.JSON(http.StatusOK, dto.CategoryListResponse{Categories: h.categoryService.All()})
	}

	categories, err := h.categoryService.ForType(models.TransactionType(req.Type))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryListResponse{Categories: categories})
}

// GetCategory returns display details for a key. Unknown keys resolve to the catch-all entry.
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	return c.JSON(http.StatusOK, h.categoryService.Lookup(c.Param("key")))
}

// SuggestCategory proposes a catalog category for a description
func (h *CategoryHandler) SuggestCategory(c echo.Context) error {
	var req dto.SuggestCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	suggestion, err := h.categoryService.Suggest(models.TransactionType(req.Type), req.Description)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, suggestion)
}

func (h *CategoryHandler) handleServiceError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrInvalidCategoryType) {
		return SendError(c, apierrors.CategoryInvalidType)
	}
	return SendSystemError(c, err)
}
