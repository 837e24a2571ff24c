package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelry-pos/internal/apperr"
)

func TestGoldCostMonotonic(t *testing.T) {
	weights := []float64{0, 0.5, 1, 3.75, 10}
	prices := []float64{0, 100, 98900, 120000}
	for i, w := range weights {
		for j, p := range prices {
			got, err := GoldCost(w, p)
			require.NoError(t, err)
			assert.InDelta(t, w*p, got, 1e-9)
			if i > 0 {
				prev, _ := GoldCost(weights[i-1], p)
				assert.GreaterOrEqual(t, got, prev)
			}
			if j > 0 {
				prev, _ := GoldCost(w, prices[j-1])
				assert.GreaterOrEqual(t, got, prev)
			}
		}
	}
}

func TestGoldCostRejectsNegative(t *testing.T) {
	_, err := GoldCost(-1, 100)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = GoldCost(1, -100)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestStoneCostIsOrderIndependent(t *testing.T) {
	lines := []MaterialLine{
		{Role: RoleMain, Name: "Diamond", Quantity: 1, UnitPrice: 500000},
		{Role: RoleSub, Name: "Melee", Quantity: 12, UnitPrice: 15000},
		{Role: RoleSub, Name: "Ruby", Quantity: 2, UnitPrice: 80000},
	}
	reversed := []MaterialLine{lines[2], lines[1], lines[0]}

	a, err := StoneCost(lines)
	require.NoError(t, err)
	b, err := StoneCost(reversed)
	require.NoError(t, err)

	assert.InDelta(t, 500000+12*15000+2*80000, a, 1e-9)
	assert.Equal(t, a, b)
}

func TestStoneCostEmpty(t *testing.T) {
	got, err := StoneCost(nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestStoneCostRejectsNegativeLine(t *testing.T) {
	_, err := StoneCost([]MaterialLine{{Role: RoleMain, Name: "x", Quantity: -1, UnitPrice: 10}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestMaterialCost(t *testing.T) {
	gold, stone, total, err := MaterialCost(2, 98900, []MaterialLine{{Role: RoleMain, Name: "CZ", Quantity: 3, UnitPrice: 1000}})
	require.NoError(t, err)
	assert.InDelta(t, 197800, gold, 1e-9)
	assert.InDelta(t, 3000, stone, 1e-9)
	assert.InDelta(t, 200800, total, 1e-9)
}

func TestAppliedPricePerGram(t *testing.T) {
	cases := []struct {
		base   int64
		purity string
		want   int64
	}{
		{450000, "24K", 120000},
		{450000, "18K", 99000},
		{450000, "18k", 99000},
		{450000, "14K", 77200},
		{380000, "PT", 101300},
		{0, "18K", 0},
	}
	for _, tc := range cases {
		t.Run(tc.purity, func(t *testing.T) {
			assert.Equal(t, tc.want, AppliedPricePerGram(tc.base, tc.purity))
		})
	}
}

func TestPurityMultiplier(t *testing.T) {
	assert.Equal(t, 0.825, PurityMultiplier("18K"))
	assert.Equal(t, 0.6435, PurityMultiplier(" 14k "))
	assert.Equal(t, 1.0, PurityMultiplier("Silver"))
	assert.Equal(t, 1.0, PurityMultiplier(""))
}
