package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/catalog"
)

type SubCategoryRequest struct {
	MainCategory string `json:"main_category" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// --- GET: /api/sub-categories?main=Jewelry ---
func (h *Handler) ListSubCategories(c *gin.Context) {
	var main catalog.Category
	if raw := c.Query("main"); raw != "" {
		cat, err := catalog.ParseCategory(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		main = cat
	}
	subs, err := h.Store.SubCategories(c.Request.Context(), main)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) AddSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "main_category and name are required")
		return
	}
	main, err := catalog.ParseCategory(req.MainCategory)
	if err != nil {
		respondError(c, err)
		return
	}
	row, err := h.Store.AddSubCategory(c.Request.Context(), main, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) DeleteSubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteSubCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub-category deleted"})
}
