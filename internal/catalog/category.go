package catalog

import (
	"strings"

	"jewelry-pos/internal/apperr"
)

// Category is the main product category.
type Category string

const (
	Jewelry    Category = "Jewelry"
	Gold       Category = "Gold"
	Watch      Category = "Watch"
	Diamond    Category = "Diamond"
	ColorStone Category = "ColorStone"
	Etc        Category = "Etc"
)

// DetailKind names the variant of the category detail record.
type DetailKind string

const (
	KindJewelry    DetailKind = "jewelry"
	KindDiamond    DetailKind = "diamond"
	KindColorStone DetailKind = "color_stone"
	KindWatch      DetailKind = "watch"
	KindEtc        DetailKind = "etc"
)

// Formula selects the order of operations used to price a detail.
type Formula string

const (
	// FormulaLabor: materials + labor, margin, then VAT and card fee on the selling price.
	FormulaLabor Formula = "labor"
	// FormulaDiamond: margin on purchase cost, VAT on the post-margin price.
	FormulaDiamond Formula = "diamond"
	// FormulaMargin: margin on purchase cost, VAT and special tax on the margin amount.
	FormulaMargin Formula = "margin"
)

// Schema describes one category: its detail variant, its formula, the
// product code letter and the attribute fields the detail carries.
type Schema struct {
	Category Category   `json:"category"`
	Code     string     `json:"code"`
	Kind     DetailKind `json:"kind"`
	Formula  Formula    `json:"formula"`
	Fields   []string   `json:"fields"`
}

var jewelryFields = []string{
	"gold_weight", "gold_purity", "gold_price_per_gram", "labor_cost",
	"margin_pct", "discount_pct", "vat_pct", "fee_pct",
}

var registry = []Schema{
	{Category: Jewelry, Code: "J", Kind: KindJewelry, Formula: FormulaLabor, Fields: jewelryFields},
	{Category: Gold, Code: "G", Kind: KindJewelry, Formula: FormulaLabor, Fields: jewelryFields},
	{Category: Watch, Code: "W", Kind: KindWatch, Formula: FormulaMargin, Fields: []string{
		"brand", "model_number", "year", "size", "material", "dial_color", "movement", "band",
		"has_certificate", "has_case", "condition", "purchase_cost", "margin_pct", "vat_pct", "tax_pct",
	}},
	{Category: Diamond, Code: "D", Kind: KindDiamond, Formula: FormulaDiamond, Fields: []string{
		"stone_type", "certificate", "shape", "carat", "color", "clarity", "cut", "polish",
		"symmetry", "fluorescence", "purchase_cost", "margin_pct", "vat_pct",
	}},
	{Category: ColorStone, Code: "C", Kind: KindColorStone, Formula: FormulaMargin, Fields: []string{
		"stone_type", "cert_agency", "shape", "weight", "color", "tone", "saturation", "clarity",
		"origin", "remark", "purchase_cost", "margin_pct", "vat_pct", "tax_pct",
	}},
	{Category: Etc, Code: "E", Kind: KindEtc, Formula: FormulaMargin, Fields: []string{
		"material", "size", "remarks", "purchase_cost", "margin_pct", "vat_pct", "tax_pct",
	}},
}

// aliases accepted on input; older records used these names.
var aliases = map[string]Category{
	"dia/stone":   Diamond,
	"loosestone":  Diamond,
	"loose_stone": Diamond,
	"certificate": ColorStone,
	"colorstone":  ColorStone,
	"color_stone": ColorStone,
}

// Lookup returns the schema for c.
func Lookup(c Category) (Schema, bool) {
	for _, s := range registry {
		if s.Category == c {
			return s, true
		}
	}
	return Schema{}, false
}

// Schemas lists every category in display order.
func Schemas() []Schema {
	out := make([]Schema, len(registry))
	copy(out, registry)
	return out
}

// ParseCategory is case-insensitive and understands legacy names.
func ParseCategory(s string) (Category, error) {
	raw := strings.TrimSpace(s)
	for _, sc := range registry {
		if strings.EqualFold(string(sc.Category), raw) {
			return sc.Category, nil
		}
	}
	if c, ok := aliases[strings.ToLower(raw)]; ok {
		return c, nil
	}
	return "", apperr.Validation("category", "unknown category "+strings.TrimSpace(s))
}

// CodeLetter is the product code letter of c, "X" when unknown.
func (c Category) CodeLetter() string {
	if s, ok := Lookup(c); ok {
		return s.Code
	}
	return "X"
}
