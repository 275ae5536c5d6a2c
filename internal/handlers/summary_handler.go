package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneymap/internal/services"
)

// SummaryHandler handles dashboard aggregation requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary handles the current-month dashboard summary.
// @Summary     Dashboard summary
// @Description Current-month totals, category breakdown, recent transactions, budget-vs-actual rows, and budget insights
// @Tags        summary
// @Produce     json
// @Success     200 {object} services.Summary
// @Failure     500 {object} ErrorResponse
// @Router      /api/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthlyTrend handles the trailing six-month series.
// @Summary     Monthly trend
// @Description Totals and transaction counts for the trailing six calendar months, oldest first
// @Tags        summary
// @Produce     json
// @Success     200 {array}  services.MonthlySummary
// @Failure     500 {object} ErrorResponse
// @Router      /api/summary/monthly [get]
func (h *SummaryHandler) GetMonthlyTrend(c *gin.Context) {
	series, err := h.summaryService.GetMonthlyTrend()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}
