// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Pricing  PricingConfig
	Logger   LoggerConfig
	Gemini   GeminiConfig
}

type ServerConfig struct {
	Port              string
	BaseURL           string
	CORSOrigins       []string
	UploadDir         string
	AllowRegistration bool
}

type DatabaseConfig struct {
	Driver string // mysql | sqlite
	DSN    string
	Debug  bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	AdminShopCode string
}

// PricingConfig holds the manual metal price used when no fresher quote is known.
type PricingConfig struct {
	GoldPricePerDon int64
	QuoteTTL        time.Duration
}

type LoggerConfig struct {
	Mode     string // development | production
	Filename string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load reads .env (when present) and then the environment. Explicit env
// vars win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	return &Config{
		Server: ServerConfig{
			Port:              port,
			BaseURL:           getEnv("BASE_URL", "http://localhost:"+port),
			CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
			UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
			AllowRegistration: getEnvBool("ALLOW_REGISTRATION", false),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			DSN:    os.Getenv("DB_DSN"),
			Debug:  getEnvBool("DB_DEBUG", false),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "1234"),
			AdminShopCode: getEnv("ADMIN_SHOP_CODE", "MT"),
		},
		Pricing: PricingConfig{
			GoldPricePerDon: int64(getEnvInt("GOLD_PRICE_DON", 450000)),
			QuoteTTL:        time.Duration(getEnvInt("GOLD_PRICE_TTL_MINUTES", 30)) * time.Minute,
		},
		Logger: LoggerConfig{
			Mode:     getEnv("LOG_MODE", "development"),
			Filename: os.Getenv("LOG_FILE"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("DB_DSN is empty, configure your database")
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		return errors.New("DB_DRIVER must be mysql or sqlite")
	}
	if c.Auth.JWTSecret == "" && c.Logger.Mode == "production" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.Pricing.GoldPricePerDon <= 0 {
		return errors.New("GOLD_PRICE_DON must be positive")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool accepts "1", "true", "yes" as true.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
