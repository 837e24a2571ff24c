// Package server assembles the gin engine and its routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-pos/internal/config"
	"jewelry-pos/internal/handlers"
	"jewelry-pos/internal/logging"
	"jewelry-pos/internal/middleware"
	"jewelry-pos/internal/models"
)

func New(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	if cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)
	r.Static("/uploads", cfg.Server.UploadDir)

	// Only opens if explicitly allowed in .env
	if cfg.Server.AllowRegistration {
		r.POST("/register", h.Register)
		zap.L().Warn("registration route is OPEN, disable this in production")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(h.Issuer))
	{
		// every signed-in role
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/products/:id/breakdown", h.GetBreakdown)
		api.GET("/products/:id/current-price", h.GetCurrentPrice)
		api.GET("/categories", h.ListCategories)
		api.GET("/sub-categories", h.ListSubCategories)
		api.GET("/gold-price", h.GetGoldPrice)
		api.POST("/checkout", h.Checkout)
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/me/password", h.ChangePassword)

		biz := api.Group("")
		biz.Use(middleware.RequireRole(models.RoleSuperUser, models.RoleBiz))
		{
			biz.POST("/products", h.CreateProduct)
			biz.PUT("/products/:id", h.UpdateProduct)
			biz.DELETE("/products/:id", h.DeleteProduct)
			biz.POST("/products/:id/images/:slot", h.UploadProductImage)
			biz.POST("/sub-categories", h.AddSubCategory)
			biz.DELETE("/sub-categories/:id", h.DeleteSubCategory)
			biz.PUT("/gold-price", h.SetGoldPrice)
			biz.POST("/orders/:id/cancel", h.CancelOrder)
			biz.GET("/reports", h.GetSalesReport)
			biz.GET("/reports/valuation", h.GetStockValuation)
			biz.POST("/ask", h.AskAI)
		}

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleSuperUser))
		{
			admin.GET("/users", h.ListUsers)
			admin.POST("/users", h.CreateUser)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "route not found"})
	})
	return r
}
