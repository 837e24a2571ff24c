package database

import (
	"time"

	"gorm.io/gorm"

	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

// SalesReportResult holds the data the assistant needs
type SalesReportResult struct {
	TotalRevenue int64 `json:"total_revenue"`
	TotalCount   int64 `json:"total_count"`
}

// GetSalesReport sums completed sales within a date range.
func GetSalesReport(db *gorm.DB, scope tenant.Scope, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	completed := func() *gorm.DB {
		q := db.Model(&models.Order{}).
			Where("status = ?", models.OrderCompleted).
			Where("created_at BETWEEN ? AND ?", start, end)
		return scope.Apply(q, "shop_id")
	}

	// COALESCE gives 0 instead of NULL when nothing was sold
	if err := completed().Select("COALESCE(SUM(total_amount), 0)").Scan(&result.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := completed().Count(&result.TotalCount).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

type TopSeller struct {
	ProductName string `json:"product_name"`
	Sold        int    `json:"sold"`
	Revenue     int64  `json:"revenue"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalRevenue    int64          `json:"total_revenue"`
	TotalOrders     int64          `json:"total_orders"`
	CancelledOrders int64          `json:"cancelled_orders"`
	TopSelling      []TopSeller    `json:"top_selling"`
	RecentSales     []models.Order `json:"recent_sales"`
}

func GetSummary(db *gorm.DB, scope tenant.Scope) (*Summary, error) {
	data := Summary{TopSelling: []TopSeller{}, RecentSales: []models.Order{}}

	orders := func() *gorm.DB { return scope.Apply(db.Model(&models.Order{}), "shop_id") }

	if err := orders().Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&data.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := orders().Where("status = ?", models.OrderCompleted).Count(&data.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := orders().Where("status = ?", models.OrderCancelled).Count(&data.CancelledOrders).Error; err != nil {
		return nil, err
	}

	// Top 5 by quantity; names are the ones captured at sale time
	top := db.Table("order_items").
		Select("order_items.product_name AS product_name, SUM(order_items.quantity) AS sold, SUM(order_items.subtotal) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderCompleted)
	if err := scope.Apply(top, "orders.shop_id").
		Group("order_items.product_name").
		Order("sold desc").
		Limit(5).
		Scan(&data.TopSelling).Error; err != nil {
		return nil, err
	}

	if err := scope.Apply(db.Preload("Items"), "shop_id").
		Order("created_at desc").Order("id desc").
		Limit(10).
		Find(&data.RecentSales).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

// ValuationItem is one product row of the stock valuation.
type ValuationItem struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	UnitCost   int64  `json:"unit_cost"`
	TotalValue int64  `json:"total_value"`
	TotalCost  int64  `json:"total_cost"`
}

// CategoryGroup is one category table of the valuation.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     int64           `json:"subtotal"`
	CostSubtotal int64           `json:"cost_subtotal"`
}

type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal int64           `json:"grand_total"`
	GrandCost  int64           `json:"grand_cost"`
}

// GetStockValuation values the inventory on hand at stored prices, grouped
// by category in registry order. Unknown categories sort last.
func GetStockValuation(db *gorm.DB, scope tenant.Scope) (*ValuationResponse, error) {
	var products []models.Product
	q := db.Preload("Jewelry").Preload("Diamond").Preload("ColorStone").Preload("Watch").Preload("Etc")
	if err := scope.Apply(q, "shop_id").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	groups := make(map[string]*CategoryGroup)
	var order []string
	for _, s := range catalog.Schemas() {
		order = append(order, string(s.Category))
	}

	resp := ValuationResponse{Categories: []CategoryGroup{}}
	for _, p := range products {
		name := p.Category
		if name == "" {
			name = "Uncategorized"
		}
		g, ok := groups[name]
		if !ok {
			g = &CategoryGroup{CategoryName: name, Items: []ValuationItem{}}
			groups[name] = g
			if _, known := catalog.Lookup(catalog.Category(name)); !known {
				order = append(order, name)
			}
		}

		cost := unitCost(p)
		item := ValuationItem{
			ID:         p.ID,
			Code:       p.Code,
			Name:       p.Name,
			Quantity:   p.StockQuantity,
			UnitPrice:  p.TotalPrice,
			UnitCost:   cost,
			TotalValue: int64(p.StockQuantity) * p.TotalPrice,
			TotalCost:  int64(p.StockQuantity) * cost,
		}
		g.Items = append(g.Items, item)
		g.Subtotal += item.TotalValue
		g.CostSubtotal += item.TotalCost
		resp.GrandTotal += item.TotalValue
		resp.GrandCost += item.TotalCost
	}

	for _, name := range order {
		if g, ok := groups[name]; ok {
			resp.Categories = append(resp.Categories, *g)
		}
	}
	return &resp, nil
}

// unitCost is the pre-margin cost of one unit: product cost for jewelry,
// purchase cost for everything else.
func unitCost(p models.Product) int64 {
	switch {
	case p.Jewelry != nil:
		return p.Jewelry.ProductCost
	case p.Diamond != nil:
		return p.Diamond.PurchaseCost
	case p.ColorStone != nil:
		return p.ColorStone.PurchaseCost
	case p.Watch != nil:
		return p.Watch.PurchaseCost
	case p.Etc != nil:
		return p.Etc.PurchaseCost
	}
	return 0
}
