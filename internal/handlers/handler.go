package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/assistant"
	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/inventory"
	"jewelry-pos/internal/ledger"
	"jewelry-pos/internal/refprice"
)

// Handler carries the collaborators every route needs.
type Handler struct {
	DB        *gorm.DB
	Store     *inventory.Store
	Ledger    *ledger.Ledger
	Prices    *refprice.Holder
	Issuer    *auth.Issuer
	Assistant *assistant.Agent // nil when no API key is configured
	UploadDir string
	BaseURL   string
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:        http.StatusBadRequest,
	apperr.KindInsufficientStock: http.StatusConflict,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindConflict:          http.StatusConflict,
	apperr.KindPersistence:       http.StatusInternalServerError,
}

// respondError writes err as {"error","message","field"}. Storage failures
// are logged and never leak driver text.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": string(kind), "message": err.Error()}
	var e *apperr.Error
	if errors.As(err, &e) && e.Field != "" {
		body["field"] = e.Field
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body["message"] = "internal error, please retry"
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	respondError(c, apperr.Validation("", msg))
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.Validation(name, "must be a positive number"))
		return 0, false
	}
	return uint(id), true
}
