package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/middleware"
)

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// --- POST: /api/products/:id/images/:slot --- multipart field "file"
func (h *Handler) UploadProductImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	slot, err := catalog.ParseImageSlot(c.Param("slot"))
	if err != nil {
		respondError(c, err)
		return
	}

	// the product must be visible before anything touches the disk
	scope := middleware.Scope(c)
	if _, err := h.Store.Get(c.Request.Context(), scope, id); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Validation("file", "no file uploaded"))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		respondError(c, apperr.Validation("file", "only png, jpg and jpeg images are accepted"))
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		respondError(c, apperr.Persistence("prepare upload dir", err))
		return
	}
	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, filename)); err != nil {
		respondError(c, apperr.Persistence("save upload", err))
		return
	}

	ref := "/uploads/" + filename
	p, err := h.Store.SetImage(c.Request.Context(), scope, id, slot, ref)
	if err != nil {
		_ = os.Remove(filepath.Join(h.UploadDir, filename))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     strings.TrimRight(h.BaseURL, "/") + ref,
		"product": view(p),
	})
}
