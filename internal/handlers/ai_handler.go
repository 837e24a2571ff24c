package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-pos/internal/middleware"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) AskAI(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Message is required")
		return
	}
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "unavailable", "message": "Assistant is not configured (GEMINI_API_KEY)"})
		return
	}

	reply, err := h.Assistant.Ask(c.Request.Context(), middleware.Scope(c), req.Message)
	if err != nil {
		zap.L().Error("assistant failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant_failed", "message": "The assistant could not answer, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
