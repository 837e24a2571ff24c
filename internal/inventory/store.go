// Package inventory persists product aggregates: the product row, its one
// category detail row and its ordered stone lines, always written together.
package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

// detailTables lists every variant table, for replace and delete.
var detailTables = []any{
	&models.JewelryDetail{},
	&models.DiamondDetail{},
	&models.ColorStoneDetail{},
	&models.WatchDetail{},
	&models.EtcDetail{},
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Owner identifies the shop a new product is registered under.
type Owner struct {
	ShopID   uint
	ShopCode string
	UserID   uint
}

// Filter narrows List. Query matches name, code, category and
// sub-category case-insensitively.
type Filter struct {
	Query    string
	Category catalog.Category
	InStock  bool
	Limit    int
	Offset   int
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Jewelry").
		Preload("Diamond").
		Preload("ColorStone").
		Preload("Watch").
		Preload("Etc").
		Preload("Stones", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })
}

// Create prices p, assigns its product code and writes the aggregate in
// one transaction.
func (s *Store) Create(ctx context.Context, owner Owner, p catalog.Product) (catalog.Product, error) {
	p.Normalize()
	b, err := p.Reprice()
	if err != nil {
		return catalog.Product{}, err
	}
	p.ShopID = owner.ShopID
	shopCode := owner.ShopCode
	if shopCode == "" {
		shopCode = "SHOP"
	}

	var id uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, catalog.CodePrefix(shopCode, p.Category, s.now()))
		if err != nil {
			return err
		}
		p.Code = catalog.ProductCode(shopCode, p.Category, s.now(), seq)

		row := toRow(&p)
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		id = row.ID
		if err := writeParts(tx, id, p, b); err != nil {
			return err
		}
		if p.StockQuantity > 0 {
			return tx.Create(&models.StockMovement{
				ProductID: id, Delta: p.StockQuantity, Reason: models.MoveInit, UserID: owner.UserID,
			}).Error
		}
		return nil
	})
	if err != nil {
		return catalog.Product{}, apperr.Wrap("create product", err)
	}
	return s.Get(ctx, tenant.Everything(), id)
}

// Update replaces the editable fields, the detail row and every stone
// line of product id. Code, shop and images are kept.
func (s *Store) Update(ctx context.Context, scope tenant.Scope, userID, id uint, p catalog.Product) (catalog.Product, error) {
	p.Normalize()
	b, err := p.Reprice()
	if err != nil {
		return catalog.Product{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Product
		if err := scope.Apply(tx, "shop_id").First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product", id)
			}
			return err
		}

		if err := tx.Model(&current).Select(
			"category", "sub_category", "name", "factory_name", "factory_contact",
			"production_time", "total_price",
		).Updates(models.Product{
			Category:       string(p.Category),
			SubCategory:    p.SubCategory,
			Name:           p.Name,
			FactoryName:    p.Factory.Name,
			FactoryContact: p.Factory.Contact,
			ProductionTime: p.Factory.ProductionTime,
			TotalPrice:     p.TotalPrice,
		}).Error; err != nil {
			return err
		}

		if err := deleteParts(tx, id); err != nil {
			return err
		}
		if err := writeParts(tx, id, p, b); err != nil {
			return err
		}
		if delta := p.StockQuantity - current.StockQuantity; delta != 0 {
			if err := adjustStock(tx, &current, delta); err != nil {
				return err
			}
			return tx.Create(&models.StockMovement{
				ProductID: id, Delta: delta, Reason: models.MoveAdjust, UserID: userID,
			}).Error
		}
		return nil
	})
	if err != nil {
		return catalog.Product{}, apperr.Wrap("update product", err)
	}
	return s.Get(ctx, scope, id)
}

// nextSequence is one past the highest sequence already used under prefix.
// Deleted products never free their number.
func nextSequence(tx *gorm.DB, prefix string) (int, error) {
	var codes []string
	if err := tx.Model(&models.Product{}).
		Where("SUBSTR(code, 1, ?) = ?", len(prefix), prefix).
		Pluck("code", &codes).Error; err != nil {
		return 0, err
	}
	highest := 0
	for _, code := range codes {
		if n, err := strconv.Atoi(strings.TrimPrefix(code, prefix)); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// adjustStock applies an edited stock change relative to the stored value,
// so sales committed since p was read are kept. A reduction below zero is
// refused.
func adjustStock(tx *gorm.DB, p *models.Product, delta int) error {
	q := tx.Model(&models.Product{}).Where("id = ?", p.ID)
	if delta < 0 {
		q = q.Where("stock_quantity >= ?", -delta)
	}
	res := q.UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available := p.StockQuantity
		var fresh models.Product
		if err := tx.Select("stock_quantity").First(&fresh, p.ID).Error; err == nil {
			available = fresh.StockQuantity
		}
		return apperr.InsufficientStock(p.Name, available, -delta)
	}
	return nil
}

func writeParts(tx *gorm.DB, id uint, p catalog.Product, b catalog.Breakdown) error {
	row, err := detailRow(id, p.Detail, b)
	if err != nil {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		return err
	}
	if stones := stoneRows(id, p.Materials); len(stones) > 0 {
		return tx.Create(&stones).Error
	}
	return nil
}

func deleteParts(tx *gorm.DB, id uint) error {
	for _, table := range detailTables {
		if err := tx.Where("product_id = ?", id).Delete(table).Error; err != nil {
			return err
		}
	}
	return tx.Where("product_id = ?", id).Delete(&models.ProductStone{}).Error
}

func (s *Store) Get(ctx context.Context, scope tenant.Scope, id uint) (catalog.Product, error) {
	var row models.Product
	err := scope.Apply(preloaded(s.db.WithContext(ctx)), "shop_id").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Product{}, apperr.NotFound("product", id)
	}
	if err != nil {
		return catalog.Product{}, apperr.Persistence("load product", err)
	}
	p, err := fromRow(row)
	if err != nil {
		return catalog.Product{}, apperr.Persistence("load product", err)
	}
	return p, nil
}

// List returns the visible products matching f, newest first, plus the
// total match count ignoring Limit and Offset.
func (s *Store) List(ctx context.Context, scope tenant.Scope, f Filter) ([]catalog.Product, int64, error) {
	matching := func() *gorm.DB {
		q := scope.Apply(s.db.WithContext(ctx).Model(&models.Product{}), "shop_id")
		if term := strings.TrimSpace(f.Query); term != "" {
			like := "%" + strings.ToLower(term) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(category) LIKE ? OR LOWER(sub_category) LIKE ?",
				like, like, like, like)
		}
		if f.Category != "" {
			q = q.Where("category = ?", string(f.Category))
		}
		if f.InStock {
			q = q.Where("stock_quantity > 0")
		}
		return q
	}

	var total int64
	if err := matching().Count(&total).Error; err != nil {
		return nil, 0, apperr.Persistence("count products", err)
	}

	q := preloaded(matching())
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var rows []models.Product
	if err := q.Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, apperr.Persistence("list products", err)
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		p, err := fromRow(r)
		if err != nil {
			return nil, 0, apperr.Persistence("list products", err)
		}
		out = append(out, p)
	}
	return out, total, nil
}

// Delete removes the product with its detail and stone lines. Sold order
// lines keep their captured name and price but lose the product link.
func (s *Store) Delete(ctx context.Context, scope tenant.Scope, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Product
		if err := scope.Apply(tx, "shop_id").Select("id").First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product", id)
			}
			return err
		}
		if err := deleteParts(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	return apperr.Wrap("delete product", err)
}

var slotColumns = map[catalog.ImageSlot]string{
	catalog.SlotRepresentative: "image_rep",
	catalog.SlotTop:            "image_top",
	catalog.SlotFront:          "image_front",
	catalog.SlotSide:           "image_side",
}

// SetImage stores an image reference on one of the product's slots.
func (s *Store) SetImage(ctx context.Context, scope tenant.Scope, id uint, slot catalog.ImageSlot, ref string) (catalog.Product, error) {
	column, ok := slotColumns[slot]
	if !ok {
		return catalog.Product{}, apperr.Validation("slot", "unknown image slot")
	}
	res := scope.Apply(s.db.WithContext(ctx).Model(&models.Product{}), "shop_id").
		Where("id = ?", id).
		Update(column, ref)
	if res.Error != nil {
		return catalog.Product{}, apperr.Persistence("set image", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.Product{}, apperr.NotFound("product", id)
	}
	return s.Get(ctx, scope, id)
}
