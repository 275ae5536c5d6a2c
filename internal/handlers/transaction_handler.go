package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required,category_name"`
	Date        string          `json:"date"`
}

// UpdateTransactionRequest represents the request payload for replacing a transaction.
type UpdateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required,category_name"`
	Date        string          `json:"date" binding:"required"`
}

// GetTransactions handles listing transactions with an optional date range.
// @Summary     List transactions
// @Description List all transactions, optionally bounded by an inclusive date range
// @Tags        transactions
// @Produce     json
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	filter, err := h.parseFilter(c, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// FilterTransactions handles listing transactions with category and date filters.
// @Summary     Filter transactions
// @Description List transactions matching a category and/or inclusive date range
// @Tags        transactions
// @Produce     json
// @Param       category  query string false "Category name"
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions/filter [get]
func (h *TransactionHandler) FilterTransactions(c *gin.Context) {
	filter, err := h.parseFilter(c, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction handles recording a new transaction.
// @Summary     Create transaction
// @Description Record a new transaction; the date defaults to now when omitted
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields"))
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
		date = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(req.Amount, req.Description, req.Category, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction handles replacing the mutable fields of a transaction.
// @Summary     Update transaction
// @Description Replace all mutable fields of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields"))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Param("id"), req.Amount, req.Description, req.Category, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles removing a transaction.
// @Summary     Delete transaction
// @Description Permanently delete a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// ExportCSV handles downloading the filtered transactions as a CSV file.
// @Summary     Export transactions as CSV
// @Description Download transactions in CSV form, optionally bounded by a date range
// @Tags        transactions
// @Produce     text/csv
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {string} string "CSV document"
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/transactions/export/csv [get]
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	filter, err := h.parseFilter(c, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	content, err := h.transactionService.ExportCSV(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(content))
}

// parseFilter translates query parameters into a service-layer filter.
func (h *TransactionHandler) parseFilter(c *gin.Context, withCategory bool) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	startDate, err := parseDateParam(c, "startDate")
	if err != nil {
		return filter, err
	}
	endDate, err := parseDateParam(c, "endDate")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	if withCategory {
		if category := c.Query("category"); category != "" {
			filter.Category = &category
		}
	}

	return filter, nil
}
