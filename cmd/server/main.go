package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jewelry-pos/internal/assistant"
	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/config"
	"jewelry-pos/internal/database"
	"jewelry-pos/internal/handlers"
	"jewelry-pos/internal/inventory"
	"jewelry-pos/internal/ledger"
	"jewelry-pos/internal/logging"
	"jewelry-pos/internal/refprice"
	"jewelry-pos/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		zap.L().Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == "" {
		zap.L().Warn("JWT_SECRET not set, using an insecure development secret")
		cfg.Auth.JWTSecret = "dev-only-jewelry-pos-secret"
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zap.L().Fatal("database unavailable", zap.Error(err))
	}
	if err := database.Seed(db, cfg.Auth); err != nil {
		zap.L().Fatal("seed failed", zap.Error(err))
	}

	store := inventory.NewStore(db)
	prices := refprice.New(cfg.Pricing.GoldPricePerDon, cfg.Pricing.QuoteTTL)
	h := &handlers.Handler{
		DB:        db,
		Store:     store,
		Ledger:    ledger.New(db),
		Prices:    prices,
		Issuer:    auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		UploadDir: cfg.Server.UploadDir,
		BaseURL:   cfg.Server.BaseURL,
	}

	if cfg.Gemini.APIKey != "" {
		agent, err := assistant.New(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model,
			&assistant.Toolbox{DB: db, Store: store, Prices: prices})
		if err != nil {
			zap.L().Warn("assistant disabled", zap.Error(err))
		} else {
			h.Assistant = agent
			defer func() { _ = agent.Close() }()
		}
	} else {
		zap.L().Info("GEMINI_API_KEY not set, assistant disabled")
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		zap.L().Fatal("create upload dir", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.New(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("server starting", zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
	zap.L().Info("server stopped")
}
