package inventory

import (
	"context"
	"strings"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/models"
)

// SubCategories lists the sub-categories of main, alphabetically. An empty
// main lists all of them.
func (s *Store) SubCategories(ctx context.Context, main catalog.Category) ([]models.CategorySetting, error) {
	q := s.db.WithContext(ctx).Order("main_category").Order("name")
	if main != "" {
		q = q.Where("main_category = ?", string(main))
	}
	out := []models.CategorySetting{}
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Persistence("list sub-categories", err)
	}
	return out, nil
}

func (s *Store) AddSubCategory(ctx context.Context, main catalog.Category, name string) (models.CategorySetting, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CategorySetting{}, apperr.Validation("name", "is required")
	}
	if _, ok := catalog.Lookup(main); !ok {
		return models.CategorySetting{}, apperr.Validation("main_category", "unknown category "+string(main))
	}

	var n int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.CategorySetting{}).
		Where("main_category = ? AND LOWER(name) = ?", string(main), strings.ToLower(name)).
		Count(&n).Error; err != nil {
		return models.CategorySetting{}, apperr.Persistence("add sub-category", err)
	}
	if n > 0 {
		return models.CategorySetting{}, apperr.Conflict(name + " already exists under " + string(main))
	}

	row := models.CategorySetting{MainCategory: string(main), Name: name}
	if err := db.Create(&row).Error; err != nil {
		return models.CategorySetting{}, apperr.Persistence("add sub-category", err)
	}
	return row, nil
}

func (s *Store) DeleteSubCategory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.CategorySetting{}, id)
	if res.Error != nil {
		return apperr.Persistence("delete sub-category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("sub-category", id)
	}
	return nil
}
