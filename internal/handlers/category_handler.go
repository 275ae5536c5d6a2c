package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneymap/internal/models"
)

// CategoryHandler serves the fixed category reference data.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories handles listing the fixed category set.
// @Summary     List categories
// @Description List the fixed set of spending categories
// @Tags        categories
// @Produce     json
// @Success     200 {array} models.Category
// @Router      /api/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}
