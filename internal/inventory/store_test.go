package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/config"
	"jewelry-pos/internal/database"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

var (
	ctx    = context.Background()
	shopMT = Owner{ShopID: 1, ShopCode: "MT", UserID: 1}
	fixed  = time.Date(2026, 3, 9, 11, 0, 0, 0, time.Local)
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	s := NewStore(db)
	s.now = func() time.Time { return fixed }
	return s, db
}

func ringWithStones() catalog.Product {
	return catalog.Product{
		Category:      catalog.Jewelry,
		SubCategory:   "Ring",
		Name:          "  Solitaire ring ",
		StockQuantity: 3,
		Factory:       catalog.Factory{Name: "Jongno Works", ProductionTime: "2 weeks"},
		Detail: catalog.JewelryDetail{
			GoldWeight:       2,
			GoldPurity:       "18K",
			GoldPricePerGram: 50000,
			LaborCost:        50000,
			MarginPct:        10,
			DiscountPct:      5,
			VATPct:           10,
			FeePct:           3,
		},
		Materials: []catalog.MaterialLine{
			{Role: catalog.RoleMain, Name: "Diamond 0.3ct", Quantity: 1, UnitPrice: 200000},
			{Role: catalog.RoleSub, Name: "Cubic", Quantity: 10, UnitPrice: 1000},
			{Role: catalog.RoleMain, Name: "Sapphire", Quantity: 0, UnitPrice: 0},
		},
	}
}

func diamond(name string, cost int64) catalog.Product {
	return catalog.Product{
		Category:      catalog.Diamond,
		Name:          name,
		StockQuantity: 1,
		Detail: catalog.DiamondDetail{
			Shape: "Round", Carat: 1.01, Color: "F", Clarity: "VS1",
			PurchaseCost: cost, MarginPct: 10, VATPct: 10,
		},
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	s, db := newTestStore(t)

	in := ringWithStones()
	created, err := s.Create(ctx, shopMT, in)
	require.NoError(t, err)

	assert.Equal(t, "MT-J260309-001", created.Code)
	assert.Equal(t, uint(1), created.ShopID)
	assert.Equal(t, "Solitaire ring", created.Name)
	// 100000 gold + 210000 stones + 50000 labor, +10% margin, +10% VAT, +3% fee
	assert.Equal(t, int64(447480), created.TotalPrice)

	got, err := s.Get(ctx, tenant.Shop(1), created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Detail, got.Detail)
	assert.Equal(t, in.Materials, got.Materials)
	assert.Equal(t, in.Factory, got.Factory)

	var stored models.JewelryDetail
	require.NoError(t, db.First(&stored, "product_id = ?", created.ID).Error)
	assert.Equal(t, int64(310000), stored.MaterialCost)
	assert.Equal(t, int64(396000), stored.SellingPrice)
	assert.Equal(t, int64(447480), stored.FinalPrice)

	var moves []models.StockMovement
	require.NoError(t, db.Find(&moves).Error)
	require.Len(t, moves, 1)
	assert.Equal(t, 3, moves[0].Delta)
	assert.Equal(t, models.MoveInit, moves[0].Reason)
}

func TestCreateCodeSequence(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Create(ctx, shopMT, diamond("A", 1000000))
	require.NoError(t, err)
	b, err := s.Create(ctx, shopMT, diamond("B", 1000000))
	require.NoError(t, err)
	r, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	assert.Equal(t, "MT-D260309-001", a.Code)
	assert.Equal(t, "MT-D260309-002", b.Code)
	assert.Equal(t, "MT-J260309-001", r.Code)
	assert.Equal(t, int64(1210000), a.TotalPrice)
}

func TestCreateCodeSequenceSurvivesDeletes(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Create(ctx, shopMT, diamond("A", 1000000))
	require.NoError(t, err)
	b, err := s.Create(ctx, shopMT, diamond("B", 1000000))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, tenant.Everything(), a.ID))

	c, err := s.Create(ctx, shopMT, diamond("C", 1000000))
	require.NoError(t, err)
	assert.Equal(t, "MT-D260309-002", b.Code)
	assert.Equal(t, "MT-D260309-003", c.Code)
}

func TestCreateCodePrefixIsExact(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(ctx, Owner{ShopID: 2, ShopCode: "MXT"}, diamond("Other", 1000000))
	require.NoError(t, err)
	wild, err := s.Create(ctx, Owner{ShopID: 3, ShopCode: "M_T"}, diamond("Wild", 1000000))
	require.NoError(t, err)
	mt, err := s.Create(ctx, shopMT, diamond("Own", 1000000))
	require.NoError(t, err)

	assert.Equal(t, "M_T-D260309-001", wild.Code)
	assert.Equal(t, "MT-D260309-001", mt.Code)
}

func TestCreateRollsBackOnStoneFailure(t *testing.T) {
	s, db := newTestStore(t)
	require.NoError(t, db.Exec(`CREATE TRIGGER reject_stones BEFORE INSERT ON product_stones
		BEGIN SELECT RAISE(ABORT, 'stone write failed'); END`).Error)

	_, err := s.Create(ctx, shopMT, ringWithStones())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPersistence))

	for _, model := range []any{&models.Product{}, &models.JewelryDetail{}, &models.ProductStone{}, &models.StockMovement{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}
}

func TestCreateRejectsInvalidWithoutWriting(t *testing.T) {
	s, db := newTestStore(t)

	bad := ringWithStones()
	bad.StockQuantity = -1
	_, err := s.Create(ctx, shopMT, bad)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	mismatch := ringWithStones()
	mismatch.Detail = catalog.EtcDetail{PurchaseCost: 1}
	_, err = s.Create(ctx, shopMT, mismatch)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateReplacesDetailAndStones(t *testing.T) {
	s, db := newTestStore(t)
	created, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	edit := diamond("Loose 1ct", 2000000)
	edit.StockQuantity = 5
	edit.Materials = []catalog.MaterialLine{{Role: catalog.RoleSub, Name: "Melee", Quantity: 4, UnitPrice: 5000}}

	updated, err := s.Update(ctx, tenant.Shop(1), 1, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, created.Code, updated.Code)
	assert.Equal(t, catalog.Diamond, updated.Category)
	assert.Equal(t, edit.Detail, updated.Detail)
	assert.Equal(t, edit.Materials, updated.Materials)
	// stone lines do not move a diamond's price
	assert.Equal(t, int64(2420000), updated.TotalPrice)

	var jewelryRows, stoneRows int64
	require.NoError(t, db.Model(&models.JewelryDetail{}).Count(&jewelryRows).Error)
	require.NoError(t, db.Model(&models.ProductStone{}).Count(&stoneRows).Error)
	assert.Zero(t, jewelryRows)
	assert.Equal(t, int64(1), stoneRows)

	var adjust models.StockMovement
	require.NoError(t, db.Where("reason = ?", models.MoveAdjust).First(&adjust).Error)
	assert.Equal(t, 2, adjust.Delta)
}

func TestUpdateKeepsConcurrentSales(t *testing.T) {
	s, db := newTestStore(t)
	created, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	var row models.Product
	require.NoError(t, db.First(&row, created.ID).Error)
	// two units sell after the editor loaded the row with stock 3
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", row.ID).
		UpdateColumn("stock_quantity", 1).Error)

	require.NoError(t, adjustStock(db, &row, 2))
	var after models.Product
	require.NoError(t, db.First(&after, row.ID).Error)
	assert.Equal(t, 3, after.StockQuantity)

	err = adjustStock(db, &row, -5)
	assert.True(t, apperr.Is(err, apperr.KindInsufficientStock))
	require.NoError(t, db.First(&after, row.ID).Error)
	assert.Equal(t, 3, after.StockQuantity)
}

func TestScopeHidesOtherShops(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	other := tenant.Shop(2)
	_, err = s.Get(ctx, other, created.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = s.Update(ctx, other, 2, created.ID, ringWithStones())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(s.Delete(ctx, other, created.ID), apperr.KindNotFound))

	list, total, err := s.List(ctx, other, Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	_, err = s.Get(ctx, tenant.Everything(), created.ID)
	assert.NoError(t, err)
}

func TestDeleteCascades(t *testing.T) {
	s, db := newTestStore(t)
	created, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	pid := created.ID
	order := models.Order{ShopID: 1, TotalAmount: 447480, Status: models.OrderCompleted, Items: []models.OrderItem{
		{ProductID: &pid, ProductName: created.Name, Quantity: 1, UnitPrice: 447480, Subtotal: 447480},
	}}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, s.Delete(ctx, tenant.Shop(1), created.ID))

	_, err = s.Get(ctx, tenant.Everything(), created.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	var details, stones int64
	require.NoError(t, db.Model(&models.JewelryDetail{}).Count(&details).Error)
	require.NoError(t, db.Model(&models.ProductStone{}).Count(&stones).Error)
	assert.Zero(t, details)
	assert.Zero(t, stones)

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "Solitaire ring", item.ProductName)
}

func TestListFilter(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)
	_, err = s.Create(ctx, shopMT, diamond("Round brilliant", 1000000))
	require.NoError(t, err)
	empty := diamond("Pear", 500000)
	empty.StockQuantity = 0
	_, err = s.Create(ctx, shopMT, empty)
	require.NoError(t, err)

	list, total, err := s.List(ctx, tenant.Shop(1), Filter{Query: "SOLITAIRE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, catalog.Jewelry, list[0].Category)

	list, _, err = s.List(ctx, tenant.Shop(1), Filter{Query: "mt-d260309"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, _, err = s.List(ctx, tenant.Shop(1), Filter{Category: catalog.Diamond, InStock: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Round brilliant", list[0].Name)

	list, total, err = s.List(ctx, tenant.Everything(), Filter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
}

func TestSetImage(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.Create(ctx, shopMT, ringWithStones())
	require.NoError(t, err)

	p, err := s.SetImage(ctx, tenant.Shop(1), created.ID, catalog.SlotFront, "/uploads/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", p.Images.Front)
	assert.Empty(t, p.Images.Representative)

	_, err = s.SetImage(ctx, tenant.Shop(2), created.ID, catalog.SlotFront, "/uploads/b.png")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSubCategories(t *testing.T) {
	s, _ := newTestStore(t)

	row, err := s.AddSubCategory(ctx, catalog.Watch, " Rolex ")
	require.NoError(t, err)
	assert.Equal(t, "Rolex", row.Name)

	_, err = s.AddSubCategory(ctx, catalog.Watch, "rolex")
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	_, err = s.AddSubCategory(ctx, catalog.Category("Toys"), "Lego")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	// same name under another category is fine
	_, err = s.AddSubCategory(ctx, catalog.Etc, "Rolex")
	require.NoError(t, err)

	watch, err := s.SubCategories(ctx, catalog.Watch)
	require.NoError(t, err)
	require.Len(t, watch, 1)

	require.NoError(t, s.DeleteSubCategory(ctx, row.ID))
	assert.True(t, apperr.Is(s.DeleteSubCategory(ctx, row.ID), apperr.KindNotFound))
}
