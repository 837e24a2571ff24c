package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/config"
	"jewelry-pos/internal/database"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

var ctx = context.Background()

func newTestLedger(t *testing.T) (*Ledger, *gorm.DB) {
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
	return New(db), db
}

func addProduct(t *testing.T, db *gorm.DB, shop uint, name string, stock int, price int64) models.Product {
	t.Helper()
	p := models.Product{Code: name, ShopID: shop, Category: "Etc", Name: name, StockQuantity: stock, TotalPrice: price}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.StockQuantity
}

func TestCheckoutDebitsAndRecords(t *testing.T) {
	l, db := newTestLedger(t)
	ring := addProduct(t, db, 1, "Ring", 3, 186450)

	order, err := l.Checkout(ctx, tenant.Shop(1), 9, SaleRequest{
		CustomerName: " Kim ",
		Items:        []SaleLine{{ProductID: ring.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.Equal(t, "Kim", order.CustomerName)
	assert.Equal(t, uint(1), order.ShopID)
	assert.Equal(t, int64(372900), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(186450), order.Items[0].UnitPrice)
	assert.Equal(t, "Ring", order.Items[0].ProductName)

	assert.Equal(t, 1, stockOf(t, db, ring.ID))

	var moves []models.StockMovement
	require.NoError(t, db.Find(&moves).Error)
	require.Len(t, moves, 1)
	assert.Equal(t, -2, moves[0].Delta)
	assert.Equal(t, models.MoveSale, moves[0].Reason)
	assert.Equal(t, order.ID, *moves[0].OrderID)
}

func TestCheckoutIsAllOrNothing(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 4, 1000)
	b := addProduct(t, db, 1, "B", 2, 2000)

	_, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: b.ID, Quantity: 5},
	}})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInsufficientStock))
	assert.Contains(t, err.Error(), "2 available, 5 requested")

	assert.Equal(t, 4, stockOf(t, db, a.ID))
	assert.Equal(t, 2, stockOf(t, db, b.ID))
	var orders, moves int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.StockMovement{}).Count(&moves).Error)
	assert.Zero(t, orders)
	assert.Zero(t, moves)
}

func TestCheckoutRepeatedLinesShareStock(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 3, 1000)

	_, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: a.ID, Quantity: 2},
	}})
	assert.True(t, apperr.Is(err, apperr.KindInsufficientStock))
	assert.Equal(t, 3, stockOf(t, db, a.ID))
}

func TestCheckoutValidation(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 3, 1000)

	cases := map[string]SaleRequest{
		"no lines":      {},
		"zero quantity": {Items: []SaleLine{{ProductID: a.ID, Quantity: 0}}},
		"negative":      {Items: []SaleLine{{ProductID: a.ID, Quantity: -1}}},
		"no product":    {Items: []SaleLine{{Quantity: 1}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := l.Checkout(ctx, tenant.Shop(1), 1, req)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
	assert.Equal(t, 3, stockOf(t, db, a.ID))
}

func TestCheckoutOtherShopNotFound(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 3, 1000)

	_, err := l.Checkout(ctx, tenant.Shop(2), 2, SaleRequest{Items: []SaleLine{{ProductID: a.ID, Quantity: 1}}})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 3, stockOf(t, db, a.ID))

	order, err := l.Checkout(ctx, tenant.Scope{ShopID: 99, All: true}, 99, SaleRequest{Items: []SaleLine{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, uint(1), order.ShopID)
}

func TestSaleThenCancelRestoresStock(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 5, 1000)
	b := addProduct(t, db, 1, "B", 2, 2000)

	order, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 2},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, stockOf(t, db, a.ID))
	assert.Equal(t, 0, stockOf(t, db, b.ID))

	cancelled, err := l.Cancel(ctx, tenant.Shop(1), 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 5, stockOf(t, db, a.ID))
	assert.Equal(t, 2, stockOf(t, db, b.ID))

	_, err = l.Cancel(ctx, tenant.Shop(1), 1, order.ID)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, 5, stockOf(t, db, a.ID))

	stored, err := l.Order(ctx, tenant.Shop(1), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, stored.Status)
}

func TestStockChangesRejectNonPositiveQuantity(t *testing.T) {
	_, db := newTestLedger(t)
	ring := addProduct(t, db, 1, "Ring", 3, 186450)

	for _, qty := range []int{0, -2} {
		_, err := Increment(db, ring.ID, qty)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "increment %d", qty)
		err = Decrement(db, &ring, qty)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "decrement %d", qty)
	}
	assert.Equal(t, 3, stockOf(t, db, ring.ID))
}

func TestCancelSkipsRemovedProducts(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 5, 1000)
	b := addProduct(t, db, 1, "B", 5, 1000)

	order, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: b.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.OrderItem{}).Where("product_id = ?", b.ID).Update("product_id", nil).Error)
	require.NoError(t, db.Delete(&models.Product{}, b.ID).Error)

	_, err = l.Cancel(ctx, tenant.Shop(1), 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, db, a.ID))
}

func TestCancelScoped(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 5, 1000)
	order, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = l.Cancel(ctx, tenant.Shop(2), 2, order.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = l.Cancel(ctx, tenant.Shop(1), 1, order.ID+100)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	orders, err := l.Orders(ctx, tenant.Shop(2), OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	orders, err = l.Orders(ctx, tenant.Everything(), OrderFilter{Status: models.OrderCompleted})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1)
}

func TestConcurrentCheckoutNeverOversells(t *testing.T) {
	l, db := newTestLedger(t)
	a := addProduct(t, db, 1, "A", 5, 1000)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold, short := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Checkout(ctx, tenant.Shop(1), 1, SaleRequest{Items: []SaleLine{{ProductID: a.ID, Quantity: 1}}})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				sold++
			} else if apperr.Is(err, apperr.KindInsufficientStock) {
				short++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, sold)
	assert.Equal(t, 5, short)
	assert.Equal(t, 0, stockOf(t, db, a.ID))
}
