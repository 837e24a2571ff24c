package catalog

import (
	"math"

	"jewelry-pos/internal/apperr"
)

// Breakdown is the full cost breakdown of one priced product. Amounts are
// unrounded; Rounded() gives the persisted integer view.
type Breakdown struct {
	Formula      Formula `json:"formula"`
	GoldCost     float64 `json:"gold_cost"`
	StoneCost    float64 `json:"stone_cost"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	ProductCost  float64 `json:"product_cost"`
	MarginAmount float64 `json:"margin_amount"`
	SellingPrice float64 `json:"selling_price"`
	VATAmount    float64 `json:"vat_amount"`
	FeeAmount    float64 `json:"fee_amount"`
	TaxAmount    float64 `json:"tax_amount"`
	FinalPrice   float64 `json:"final_price"`
}

// Amounts is a Breakdown rounded to whole currency units.
type Amounts struct {
	MaterialCost int64 `json:"material_cost"`
	ProductCost  int64 `json:"product_cost"`
	MarginAmount int64 `json:"margin_amount"`
	SellingPrice int64 `json:"selling_price"`
	VATAmount    int64 `json:"vat_amount"`
	FeeAmount    int64 `json:"fee_amount"`
	TaxAmount    int64 `json:"tax_amount"`
	FinalPrice   int64 `json:"final_price"`
}

func (b Breakdown) Rounded() Amounts {
	return Amounts{
		MaterialCost: RoundWon(b.MaterialCost),
		ProductCost:  RoundWon(b.ProductCost),
		MarginAmount: RoundWon(b.MarginAmount),
		SellingPrice: RoundWon(b.SellingPrice),
		VATAmount:    RoundWon(b.VATAmount),
		FeeAmount:    RoundWon(b.FeeAmount),
		TaxAmount:    RoundWon(b.TaxAmount),
		FinalPrice:   RoundWon(b.FinalPrice),
	}
}

// PriceWithLabor applies the jewelry/gold formula.
//
//	product_cost  = material_cost + labor_cost
//	selling_price = product_cost * (1 + margin/100)
//	final_price   = selling_price + vat + fee, both on selling_price
func PriceWithLabor(materialCost, laborCost, marginPct, vatPct, feePct float64) (Breakdown, error) {
	if err := nonNegative(map[string]float64{
		"material_cost": materialCost, "labor_cost": laborCost,
		"margin_pct": marginPct, "vat_pct": vatPct, "fee_pct": feePct,
	}); err != nil {
		return Breakdown{}, err
	}
	productCost := materialCost + laborCost
	selling := productCost * (1 + marginPct/100)
	vat := selling * (vatPct / 100)
	fee := selling * (feePct / 100)
	return Breakdown{
		Formula:      FormulaLabor,
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		ProductCost:  productCost,
		MarginAmount: selling - productCost,
		SellingPrice: selling,
		VATAmount:    vat,
		FeeAmount:    fee,
		FinalPrice:   selling + vat + fee,
	}, nil
}

// PriceDiamond applies the loose diamond formula: VAT on the post-margin price.
func PriceDiamond(purchaseCost, marginPct, vatPct float64) (Breakdown, error) {
	if err := nonNegative(map[string]float64{
		"purchase_cost": purchaseCost, "margin_pct": marginPct, "vat_pct": vatPct,
	}); err != nil {
		return Breakdown{}, err
	}
	selling := purchaseCost * (1 + marginPct/100)
	final := selling * (1 + vatPct/100)
	return Breakdown{
		Formula:      FormulaDiamond,
		ProductCost:  purchaseCost,
		MarginAmount: selling - purchaseCost,
		SellingPrice: selling,
		VATAmount:    final - selling,
		FinalPrice:   final,
	}, nil
}

// PriceOnMargin applies the colored stone / watch / etc formula: VAT and
// special tax are both levied on the margin amount.
func PriceOnMargin(purchaseCost, marginPct, vatPct, taxPct float64) (Breakdown, error) {
	if err := nonNegative(map[string]float64{
		"purchase_cost": purchaseCost, "margin_pct": marginPct, "vat_pct": vatPct, "tax_pct": taxPct,
	}); err != nil {
		return Breakdown{}, err
	}
	margin := purchaseCost * (marginPct / 100)
	vat := margin * (vatPct / 100)
	tax := margin * (taxPct / 100)
	return Breakdown{
		Formula:      FormulaMargin,
		ProductCost:  purchaseCost,
		MarginAmount: margin,
		SellingPrice: purchaseCost + margin,
		VATAmount:    vat,
		TaxAmount:    tax,
		FinalPrice:   purchaseCost + margin + vat + tax,
	}, nil
}

func nonNegative(fields map[string]float64) error {
	for name, v := range fields {
		if v < 0 {
			return apperr.Validation(name, "must not be negative")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperr.Validation(name, "must be a finite number")
		}
	}
	return nil
}
