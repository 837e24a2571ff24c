package catalog

import "github.com/shopspring/decimal"

// RoundWon rounds a currency amount to a whole unit, half away from zero.
// Pricing math stays in float64 until a value is persisted.
func RoundWon(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}
