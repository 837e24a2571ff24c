package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/database"
	"jewelry-pos/internal/middleware"
)

// --- GET: /api/reports ---
func (h *Handler) GetSalesReport(c *gin.Context) {
	data, err := database.GetSummary(h.DB.WithContext(c.Request.Context()), middleware.Scope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// --- GET: /api/reports/valuation ---
// GetStockValuation values the stock on hand per category at stored prices
func (h *Handler) GetStockValuation(c *gin.Context) {
	data, err := database.GetStockValuation(h.DB.WithContext(c.Request.Context()), middleware.Scope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
