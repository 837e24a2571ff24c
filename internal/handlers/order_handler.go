package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/ledger"
	"jewelry-pos/internal/middleware"
)

// --- POST: /api/checkout ---
func (h *Handler) Checkout(c *gin.Context) {
	var req ledger.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.Ledger.Checkout(c.Request.Context(), middleware.Scope(c), c.GetUint("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Sale successful!",
		"order_id": order.ID,
		"total":    order.TotalAmount,
		"order":    order,
	})
}

// --- GET: /api/orders?status=&limit= ---
func (h *Handler) ListOrders(c *gin.Context) {
	f := ledger.OrderFilter{Status: c.Query("status")}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	orders, err := h.Ledger.Orders(c.Request.Context(), middleware.Scope(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.Ledger.Order(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- POST: /api/orders/:id/cancel ---
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.Ledger.Cancel(c.Request.Context(), middleware.Scope(c), c.GetUint("userID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
