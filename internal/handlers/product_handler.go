package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/inventory"
	"jewelry-pos/internal/middleware"
)

// --- GET: /api/products?q=&category=&in_stock=&limit=&offset= ---
func (h *Handler) ListProducts(c *gin.Context) {
	f := inventory.Filter{Query: c.Query("q")}
	if raw := c.Query("category"); raw != "" {
		cat, err := catalog.ParseCategory(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		f.Category = cat
	}
	f.InStock = c.Query("in_stock") == "true"
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	products, total, err := h.Store.List(c.Request.Context(), middleware.Scope(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]productView, 0, len(products))
	for _, p := range products {
		items = append(items, view(p))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.Get(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(p))
}

// --- POST: /api/products ---
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	p, err := req.toProduct(h.Prices)
	if err != nil {
		respondError(c, err)
		return
	}

	claims := middleware.Claims(c)
	owner := inventory.Owner{ShopID: claims.ShopID, ShopCode: claims.ShopCode, UserID: claims.UserID}
	created, err := h.Store.Create(c.Request.Context(), owner, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view(created))
}

// --- PUT: /api/products/:id --- replaces the whole record
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	p, err := req.toProduct(h.Prices)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.Store.Update(c.Request.Context(), middleware.Scope(c), c.GetUint("userID"), id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(updated))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.Delete(c.Request.Context(), middleware.Scope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- GET: /api/products/:id/breakdown --- cost breakdown from stored inputs
func (h *Handler) GetBreakdown(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.Get(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	b, err := p.Quote()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product_id":  p.ID,
		"total_price": p.TotalPrice,
		"breakdown":   b,
		"amounts":     b.Rounded(),
	})
}

// --- GET: /api/products/:id/current-price --- jewelry at today's gold price
func (h *Handler) GetCurrentPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.Get(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	quote := h.Prices.Current()
	b, err := p.QuoteAt(quote.PerDon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product_id":    p.ID,
		"stored_price":  p.TotalPrice,
		"current_price": catalog.RoundWon(b.FinalPrice),
		"breakdown":     b,
		"gold_price":    quote,
	})
}

// --- GET: /api/categories --- the category registry
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Schemas())
}
