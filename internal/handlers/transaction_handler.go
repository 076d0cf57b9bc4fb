package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	recentLimit        int
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface, recentLimit int) *TransactionHandler {
	if recentLimit <= 0 {
		recentLimit = services.DefaultRecentTransactionsLimit
	}
	return &TransactionHandler{
		transactionService: transactionService,
		recentLimit:        recentLimit,
	}
}

// CreateTransaction records a new income or expense
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		slog.Warn("invalid transaction payload", "client_ip", getClientIP(c), "error", err)
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate)
	}

	txn, err := h.transactionService.Add(services.AddTransactionInput{
		Type:        models.TransactionType(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewTransactionResponse(*txn),
		Message: "Transaction added",
	})
}

// ListTransactions returns all transactions newest first, or the filtered subset in insertion order
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	var req dto.ListTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	filters, err := buildTransactionFilters(req)
	if err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails(err.Error()))
	}

	var transactions []models.Transaction
	if filters == (models.TransactionFilters{}) {
		transactions = h.transactionService.List()
	} else {
		transactions = h.transactionService.Query(filters)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(transactions))
}

// RecentTransactions returns the newest transactions by date
func (h *TransactionHandler) RecentTransactions(c echo.Context) error {
	var req dto.RecentTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.recentLimit
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(h.transactionService.Recent(limit)))
}

// DeleteTransaction removes a transaction. Unknown IDs succeed without effect.
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return SendError(c, apierrors.TransactionInvalidID)
	}

	if err := h.transactionService.Delete(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ClearTransactions removes every transaction
func (h *TransactionHandler) ClearTransactions(c echo.Context) error {
	if err := h.transactionService.ClearAll(); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "All transactions cleared",
	})
}

func (h *TransactionHandler) handleServiceError(c echo.Context, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "type" {
			return SendError(c, apierrors.TransactionInvalidType)
		}
		if validationErr.Field == "amount" {
			return SendError(c, apierrors.TransactionInvalidAmount)
		}
		return SendError(c, apierrors.TransactionValidationFailed, apierrors.WithDetails(validationErr.Field+": "+validationErr.Message))
	}

	if errors.Is(err, services.ErrNothingToClear) {
		return SendError(c, apierrors.TransactionNothingToClear)
	}

	slog.Error("transaction request failed", "trace_id", getTraceID(c), "error", err)
	return SendStorageError(c, err)
}

func buildTransactionFilters(req dto.ListTransactionsRequest) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		Type:     models.TransactionType(req.Type),
		Category: req.Category,
	}

	if req.StartDate != "" {
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(filters.EndDate.Time) {
		return filters, errors.New("start_date must not be after end_date")
	}

	return filters, nil
}
