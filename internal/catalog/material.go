package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"jewelry-pos/internal/apperr"
)

// DonGrams is the weight of one Don, the traditional unit gold is quoted in.
const DonGrams = 3.75

// Role of a stone line inside a product.
type Role string

const (
	RoleMain Role = "Main"
	RoleSub  Role = "Sub"
)

// MaterialLine is one stone entry attached to a product.
type MaterialLine struct {
	Role      Role   `json:"role"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (m MaterialLine) Validate(i int) error {
	field := fmt.Sprintf("materials[%d]", i)
	if m.Role != RoleMain && m.Role != RoleSub {
		return apperr.Validation(field+".role", "must be Main or Sub")
	}
	if strings.TrimSpace(m.Name) == "" {
		return apperr.Validation(field+".name", "is required")
	}
	if m.Quantity < 0 {
		return apperr.Validation(field+".quantity", "must not be negative")
	}
	if m.UnitPrice < 0 {
		return apperr.Validation(field+".unit_price", "must not be negative")
	}
	return nil
}

// ParseRole accepts "main"/"sub" in any case.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main":
		return RoleMain, nil
	case "sub":
		return RoleSub, nil
	}
	return "", apperr.Validation("role", "must be Main or Sub")
}

// GoldCost is weight x price per gram. Negative inputs are rejected.
func GoldCost(weightG, pricePerG float64) (float64, error) {
	if weightG < 0 || math.IsNaN(weightG) {
		return 0, apperr.Validation("gold_weight", "must not be negative")
	}
	if pricePerG < 0 || math.IsNaN(pricePerG) {
		return 0, apperr.Validation("gold_price_per_gram", "must not be negative")
	}
	return weightG * pricePerG, nil
}

// StoneCost sums quantity x unit price over Main and Sub lines alike.
func StoneCost(lines []MaterialLine) (float64, error) {
	var total float64
	for i, l := range lines {
		if err := l.Validate(i); err != nil {
			return 0, err
		}
		total += float64(l.Quantity) * float64(l.UnitPrice)
	}
	return total, nil
}

// MaterialCost returns gold, stone and combined cost.
func MaterialCost(weightG, pricePerG float64, lines []MaterialLine) (gold, stone, total float64, err error) {
	if gold, err = GoldCost(weightG, pricePerG); err != nil {
		return 0, 0, 0, err
	}
	if stone, err = StoneCost(lines); err != nil {
		return 0, 0, 0, err
	}
	return gold, stone, gold + stone, nil
}

// PurityMultiplier prices an alloy against the pure-metal quote. Anything
// other than 18K and 14K (24K, platinum, silver, custom) uses the quote as is.
func PurityMultiplier(purity string) float64 {
	switch strings.ToUpper(strings.TrimSpace(purity)) {
	case "18K":
		return 0.825
	case "14K":
		return 0.6435
	default:
		return 1.0
	}
}

// AppliedPricePerGram converts a per-Don quote into the per-gram price
// stored on a jewelry record: apply purity, divide by 3.75, truncate down
// to the nearest 100.
func AppliedPricePerGram(basePerDon int64, purity string) int64 {
	if basePerDon <= 0 {
		return 0
	}
	perGram := decimal.NewFromInt(basePerDon).
		Mul(decimal.NewFromFloat(PurityMultiplier(purity))).
		Div(decimal.NewFromFloat(DonGrams))
	return perGram.Div(decimal.NewFromInt(100)).Floor().Mul(decimal.NewFromInt(100)).IntPart()
}
