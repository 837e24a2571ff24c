package assistant

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/database"
	"jewelry-pos/internal/inventory"
	"jewelry-pos/internal/refprice"
	"jewelry-pos/internal/tenant"
)

// Tool names understood by Toolbox.Call.
const (
	ToolCheckInventory = "check_inventory"
	ToolGoldPrice      = "get_gold_price"
	ToolSalesReport    = "get_sales_report"
	ToolQuotePrice     = "quote_price"
)

// Toolbox runs the assistant's tools against the shop data. It is
// independent of any model.
type Toolbox struct {
	DB     *gorm.DB
	Store  *inventory.Store
	Prices *refprice.Holder
}

// Call executes one tool. Args come straight from a function call, so
// numbers arrive as float64.
func (t *Toolbox) Call(ctx context.Context, scope tenant.Scope, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case ToolCheckInventory:
		return t.checkInventory(ctx, scope, args)
	case ToolGoldPrice:
		return t.goldPrice(), nil
	case ToolSalesReport:
		return t.salesReport(ctx, scope, args)
	case ToolQuotePrice:
		return t.quotePrice(args)
	}
	return nil, fmt.Errorf("unknown tool %q", name)
}

type inventoryRow struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	Price    int64  `json:"price"`
}

func (t *Toolbox) checkInventory(ctx context.Context, scope tenant.Scope, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)
	products, total, err := t.Store.List(ctx, scope, inventory.Filter{Query: query, Limit: 50})
	if err != nil {
		return nil, err
	}
	rows := make([]inventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, inventoryRow{
			ID: p.ID, Code: p.Code, Name: p.Name, Category: string(p.Category),
			Stock: p.StockQuantity, Price: p.TotalPrice,
		})
	}
	return map[string]any{"inventory": rows, "total": total}, nil
}

func (t *Toolbox) goldPrice() map[string]any {
	q := t.Prices.Current()
	return map[string]any{
		"per_don":      q.PerDon,
		"per_gram_24k": t.Prices.PerGram("24K"),
		"per_gram_18k": t.Prices.PerGram("18K"),
		"per_gram_14k": t.Prices.PerGram("14K"),
		"source":       q.Source,
		"updated_at":   q.UpdatedAt.Format(time.RFC3339),
		"stale":        q.Stale,
	}
}

func (t *Toolbox) salesReport(ctx context.Context, scope tenant.Scope, args map[string]any) (map[string]any, error) {
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)
	start, err1 := time.ParseInLocation("2006-01-02", startStr, time.Local)
	end, err2 := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("dates must be in YYYY-MM-DD format")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := database.GetSalesReport(t.DB.WithContext(ctx), scope, start, end)
	if err != nil {
		return nil, err
	}
	return map[string]any{"revenue": report.TotalRevenue, "sales_count": report.TotalCount}, nil
}

// quotePrice prices a hypothetical jewelry piece at today's gold price.
func (t *Toolbox) quotePrice(args map[string]any) (map[string]any, error) {
	purity, _ := args["purity"].(string)
	d := catalog.JewelryDetail{
		GoldWeight:       number(args, "weight_g"),
		GoldPurity:       purity,
		GoldPricePerGram: t.Prices.PerGram(purity),
		LaborCost:        int64(number(args, "labor_cost")),
		MarginPct:        number(args, "margin_pct"),
		VATPct:           number(args, "vat_pct"),
		FeePct:           number(args, "fee_pct"),
	}
	b, err := d.Quote(nil)
	if err != nil {
		return nil, err
	}
	a := b.Rounded()
	return map[string]any{
		"price_per_gram": d.GoldPricePerGram,
		"material_cost":  a.MaterialCost,
		"selling_price":  a.SellingPrice,
		"vat_amount":     a.VATAmount,
		"fee_amount":     a.FeeAmount,
		"final_price":    a.FinalPrice,
	}, nil
}

func number(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
