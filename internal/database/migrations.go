package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"jewelry-pos/internal/models"
)

// migrations run once each, in order; applied IDs are recorded in the
// "migrations" table. Append new steps, never edit applied ones.
func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202601050001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Product{},
					&models.JewelryDetail{},
					&models.DiamondDetail{},
					&models.ColorStoneDetail{},
					&models.WatchDetail{},
					&models.EtcDetail{},
					&models.ProductStone{},
					&models.Order{},
					&models.OrderItem{},
					&models.CategorySetting{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"category_settings", "order_items", "orders", "product_stones", "product_etc",
					"product_watches", "product_color_stones", "product_diamonds", "product_jewelry",
					"products", "users",
				)
			},
		},
		{
			ID: "202601200001_stock_movements",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.StockMovement{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("stock_movements")
			},
		},
		{
			// Earlier releases stored "Certificate" and "Dia/Stone" as category names.
			ID: "202602030001_rename_legacy_categories",
			Migrate: func(tx *gorm.DB) error {
				renames := [][2]string{{"Certificate", "ColorStone"}, {"Dia/Stone", "Diamond"}}
				for _, r := range renames {
					if err := tx.Model(&models.Product{}).Where("category = ?", r[0]).
						Update("category", r[1]).Error; err != nil {
						return err
					}
					if err := tx.Model(&models.CategorySetting{}).Where("main_category = ?", r[0]).
						Update("main_category", r[1]).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// Migrate brings the schema to the latest version.
func Migrate(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, migrations()).Migrate()
}
