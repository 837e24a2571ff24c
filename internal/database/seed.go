package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/config"
	"jewelry-pos/internal/models"
)

// DefaultSubCategories are inserted on first start.
var DefaultSubCategories = map[string][]string{
	"Jewelry": {"Ring", "Necklace", "Earring", "Bracelet"},
	"Gold":    {"Bar", "Coin"},
	"Watch":   {"Men", "Women"},
}

// Seed creates the default super user and sub-categories when missing.
// Running it again changes nothing.
func Seed(db *gorm.DB, cfg config.AuthConfig) error {
	if err := seedSuperUser(db, cfg); err != nil {
		return err
	}
	return seedSubCategories(db)
}

func seedSuperUser(db *gorm.DB, cfg config.AuthConfig) error {
	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleSuperUser,
		ShopName:     "Head Office",
		ShopCode:     cfg.AdminShopCode,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	zap.L().Info("default super user created", zap.String("username", admin.Username))
	return nil
}

func seedSubCategories(db *gorm.DB) error {
	var rows []models.CategorySetting
	for _, main := range []string{"Jewelry", "Gold", "Watch"} {
		for _, name := range DefaultSubCategories[main] {
			rows = append(rows, models.CategorySetting{MainCategory: main, Name: name})
		}
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
