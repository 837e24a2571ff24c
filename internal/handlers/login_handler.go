package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/models"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	var user models.User
	err := h.DB.WithContext(c.Request.Context()).Where("username = ?", input.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, apperr.Persistence("load user", err))
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid credentials"})
		return
	}

	// a shop account's ID is its shop ID
	token, err := h.Issuer.GenerateToken(auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		ShopID:   user.ID,
		ShopCode: user.ShopCode,
	})
	if err != nil {
		respondError(c, apperr.Persistence("sign token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"role":      user.Role,
		"username":  user.Username,
		"shop_name": user.ShopName,
		"shop_code": user.ShopCode,
	})
}

// UserRequest is the body of registration and of user creation by a
// super user.
type UserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role"`
	ShopName string `json:"shop_name"`
	ShopCode string `json:"shop_code"`
}

// Register is only mounted when ALLOW_REGISTRATION is on. It always
// creates a Biz account.
func (h *Handler) Register(c *gin.Context) {
	var input UserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username and a password of at least 4 characters are required")
		return
	}
	input.Role = models.RoleBiz
	user, err := h.createUser(c, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!", "user": user})
}

type PasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4"`
}

// --- PUT: /api/me/password ---
func (h *Handler) ChangePassword(c *gin.Context) {
	var input PasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "current_password and a new_password of at least 4 characters are required")
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var user models.User
	if err := db.First(&user, c.GetUint("userID")).Error; err != nil {
		respondError(c, apperr.NotFound("user", c.GetUint("userID")))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, input.CurrentPassword) {
		respondError(c, apperr.Validation("current_password", "does not match"))
		return
	}
	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		respondError(c, apperr.Persistence("hash password", err))
		return
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		respondError(c, apperr.Persistence("update password", err))
		return
	}
	zap.L().Info("password changed", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
