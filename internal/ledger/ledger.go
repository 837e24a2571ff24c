// Package ledger owns every stock change caused by a sale. A checkout
// debits all of its lines and records the order in one transaction; a
// cancellation credits them back and closes the order in another.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// SaleLine is one requested product and quantity.
type SaleLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type SaleRequest struct {
	CustomerName string     `json:"customer_name"`
	Items        []SaleLine `json:"items"`
}

func (r SaleRequest) validate() error {
	if len(r.Items) == 0 {
		return apperr.Validation("items", "at least one line is required")
	}
	for i, l := range r.Items {
		if l.ProductID == 0 {
			return apperr.Validation(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		if l.Quantity <= 0 {
			return apperr.Validation(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
	}
	return nil
}

// Decrement debits qty from a product's stock with a conditional update,
// so two concurrent debits cannot both pass the availability check.
func Decrement(tx *gorm.DB, p *models.Product, qty int) error {
	if qty <= 0 {
		return apperr.Validation("quantity", "must be positive")
	}
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", p.ID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available := p.StockQuantity
		var fresh models.Product
		if err := tx.Select("stock_quantity").First(&fresh, p.ID).Error; err == nil {
			available = fresh.StockQuantity
		}
		return apperr.InsufficientStock(p.Name, available, qty)
	}
	p.StockQuantity -= qty
	return nil
}

// Increment credits qty back. It reports whether the product still exists.
func Increment(tx *gorm.DB, productID uint, qty int) (bool, error) {
	if qty <= 0 {
		return false, apperr.Validation("quantity", "must be positive")
	}
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	return res.RowsAffected > 0, res.Error
}

// Checkout sells req in the caller's shop. Unit prices are the products'
// stored total prices. Either every line is debited and the order saved,
// or nothing changes.
func (l *Ledger) Checkout(ctx context.Context, scope tenant.Scope, userID uint, req SaleRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:       userID,
		ShopID:       scope.ShopID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Status:       models.OrderCompleted,
		CreatedAt:    l.now(),
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(req.Items))
		var total int64
		for i, line := range req.Items {
			var p models.Product
			if err := scope.Apply(tx, "shop_id").First(&p, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product", line.ProductID)
				}
				return err
			}
			if err := Decrement(tx, &p, line.Quantity); err != nil {
				return err
			}

			pid := p.ID
			subtotal := p.TotalPrice * int64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID:   &pid,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   p.TotalPrice,
				Subtotal:    subtotal,
			})
			total += subtotal
			if scope.All && i == 0 {
				// super users sell on behalf of the product's shop
				order.ShopID = p.ShopID
			}
		}

		order.TotalAmount = total
		order.Items = items
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		moves := make([]models.StockMovement, 0, len(items))
		for _, it := range items {
			moves = append(moves, models.StockMovement{
				ProductID: *it.ProductID, OrderID: &order.ID, Delta: -it.Quantity,
				Reason: models.MoveSale, UserID: userID,
			})
		}
		return tx.Create(&moves).Error
	})
	if err != nil {
		return nil, apperr.Wrap("checkout", err)
	}

	zap.L().Info("sale completed",
		zap.Uint("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Int64("total", order.TotalAmount),
	)
	return &order, nil
}

// Cancel moves a completed order to Cancelled and restores exactly the
// quantities it debited. Lines whose product was deleted are skipped.
func (l *Ledger) Cancel(ctx context.Context, scope tenant.Scope, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scope.Apply(tx.Preload("Items"), "shop_id").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order", orderID)
			}
			return err
		}

		now := l.now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderCompleted).
			Updates(map[string]any{"status": models.OrderCancelled, "cancelled_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict(fmt.Sprintf("order %d is already %s", order.ID, strings.ToLower(order.Status)))
		}
		order.Status = models.OrderCancelled
		order.CancelledAt = &now

		var moves []models.StockMovement
		for _, it := range order.Items {
			if it.ProductID == nil {
				zap.L().Warn("cancel: product removed, stock not restored",
					zap.Uint("order_id", order.ID), zap.String("product", it.ProductName))
				continue
			}
			found, err := Increment(tx, *it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !found {
				zap.L().Warn("cancel: product missing, stock not restored",
					zap.Uint("order_id", order.ID), zap.Uint("product_id", *it.ProductID))
				continue
			}
			moves = append(moves, models.StockMovement{
				ProductID: *it.ProductID, OrderID: &order.ID, Delta: it.Quantity,
				Reason: models.MoveCancel, UserID: userID,
			})
		}
		if len(moves) > 0 {
			return tx.Create(&moves).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("cancel order", err)
	}

	zap.L().Info("order cancelled", zap.Uint("order_id", order.ID))
	return &order, nil
}

// OrderFilter narrows Orders; zero fields match everything.
type OrderFilter struct {
	Status string
	Limit  int
}

// Orders lists visible orders newest first, items preloaded.
func (l *Ledger) Orders(ctx context.Context, scope tenant.Scope, f OrderFilter) ([]models.Order, error) {
	q := scope.Apply(l.db.WithContext(ctx).Preload("Items"), "shop_id")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	orders := []models.Order{}
	if err := q.Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, apperr.Persistence("list orders", err)
	}
	return orders, nil
}

func (l *Ledger) Order(ctx context.Context, scope tenant.Scope, id uint) (*models.Order, error) {
	var order models.Order
	err := scope.Apply(l.db.WithContext(ctx).Preload("Items"), "shop_id").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, apperr.Persistence("load order", err)
	}
	return &order, nil
}
