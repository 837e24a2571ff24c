package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/refprice"
)

type GoldPriceRequest struct {
	PerDon int64  `json:"per_don" binding:"required"`
	Source string `json:"source"`
}

var displayPurities = []string{"24K", "18K", "14K"}

func (h *Handler) goldPriceBody() gin.H {
	perGram := make(map[string]int64, len(displayPurities))
	for _, p := range displayPurities {
		perGram[p] = h.Prices.PerGram(p)
	}
	return gin.H{"quote": h.Prices.Current(), "per_gram": perGram}
}

// --- GET: /api/gold-price ---
func (h *Handler) GetGoldPrice(c *gin.Context) {
	c.JSON(http.StatusOK, h.goldPriceBody())
}

// --- PUT: /api/gold-price ---
func (h *Handler) SetGoldPrice(c *gin.Context) {
	var req GoldPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "per_don is required")
		return
	}
	if req.Source != "" && req.Source != refprice.SourceManual && req.Source != refprice.SourceFeed {
		respondError(c, apperr.Validation("source", "must be manual or feed"))
		return
	}
	if _, err := h.Prices.Set(req.PerDon, req.Source); err != nil {
		respondError(c, apperr.Validation("per_don", err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.goldPriceBody())
}
