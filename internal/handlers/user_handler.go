package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/models"
)

var knownRoles = map[string]bool{
	models.RoleSuperUser: true,
	models.RoleBiz:       true,
	models.RoleGeneral:   true,
}

// --- GET: /api/users --- SuperUser only
func (h *Handler) ListUsers(c *gin.Context) {
	users := []models.User{}
	if err := h.DB.WithContext(c.Request.Context()).Order("id").Find(&users).Error; err != nil {
		respondError(c, apperr.Persistence("list users", err))
		return
	}
	c.JSON(http.StatusOK, users)
}

// --- POST: /api/users --- SuperUser only
func (h *Handler) CreateUser(c *gin.Context) {
	var input UserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username and a password of at least 4 characters are required")
		return
	}
	if input.Role == "" {
		input.Role = models.RoleBiz
	}
	user, err := h.createUser(c, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) createUser(c *gin.Context, input UserRequest) (*models.User, error) {
	if !knownRoles[input.Role] {
		return nil, apperr.Validation("role", "must be SuperUser, Biz or General")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperr.Validation("username", "is required")
	}

	db := h.DB.WithContext(c.Request.Context())
	var taken int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, apperr.Persistence("check username", err)
	}
	if taken > 0 {
		return nil, apperr.Conflict("username " + username + " is already taken")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Persistence("hash password", err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         input.Role,
		ShopName:     strings.TrimSpace(input.ShopName),
		ShopCode:     strings.ToUpper(strings.TrimSpace(input.ShopCode)),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, apperr.Persistence("create user", err)
	}
	zap.L().Info("user created", zap.String("username", user.Username), zap.String("role", user.Role))
	return &user, nil
}
