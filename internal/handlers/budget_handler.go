package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// UpsertBudgetRequest represents the request payload for creating or
// replacing a budget. Amount, month, and year are pointers because zero is a
// valid value for each of them.
type UpsertBudgetRequest struct {
	CategoryName string           `json:"categoryName" binding:"required,category_name"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Month        *int             `json:"month" binding:"required,min=0,max=11"`
	Year         *int             `json:"year" binding:"required,min=2020"`
}

// GetBudgets handles listing budgets, optionally scoped to a date range.
// @Summary     List budgets
// @Description List budgets; a full date range is expanded to every month it touches
// @Tags        budgets
// @Produce     json
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {array}  models.Budget
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	startDate, err := parseDateParam(c, "startDate")
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDateParam(c, "endDate")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetBudgets(startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudgetsForMonth handles listing the budgets of one calendar month.
// @Summary     List budgets for a month
// @Description List budgets for a specific zero-based month of a year
// @Tags        budgets
// @Produce     json
// @Param       year  path int true "Year"
// @Param       month path int true "Month (0-11)"
// @Success     200 {array}  models.Budget
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/budgets/month/{year}/{month} [get]
func (h *BudgetHandler) GetBudgetsForMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	budgets, err := h.budgetService.GetBudgetsForMonth(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// UpsertBudget handles creating or replacing a budget for a
// (category, month, year) triple.
// @Summary     Upsert budget
// @Description Create a budget or replace the amount of the existing one for the same category, month, and year
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body UpsertBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/budgets [post]
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields"))
		return
	}

	budget, err := h.budgetService.UpsertBudget(req.CategoryName, *req.Amount, *req.Month, *req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles removing a budget.
// @Summary     Delete budget
// @Description Permanently delete a budget by ID
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Failure     500 {object} ErrorResponse
// @Router      /api/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
