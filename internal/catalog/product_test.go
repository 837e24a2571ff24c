package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelry-pos/internal/apperr"
)

func ring() *Product {
	return &Product{
		Category:      Jewelry,
		SubCategory:   "Ring",
		Name:          "Solitaire ring",
		StockQuantity: 2,
		Detail: JewelryDetail{
			GoldWeight:       2,
			GoldPurity:       "18K",
			GoldPricePerGram: 50000,
			LaborCost:        50000,
			MarginPct:        10,
			DiscountPct:      5,
			VATPct:           10,
			FeePct:           3,
		},
		Materials: []MaterialLine{
			{Role: RoleMain, Name: "Diamond 0.1ct", Quantity: 0, UnitPrice: 0},
		},
	}
}

func TestJewelryQuoteUsesMaterialsAndIgnoresDiscount(t *testing.T) {
	p := ring()
	b, err := p.Reprice()
	require.NoError(t, err)

	assert.InDelta(t, 100000, b.GoldCost, eps)
	assert.InDelta(t, 100000, b.MaterialCost, eps)
	assert.InDelta(t, 186450, b.FinalPrice, eps)
	assert.Equal(t, int64(186450), p.TotalPrice)
}

func TestQuoteIsIdempotent(t *testing.T) {
	p := ring()
	p.Materials = append(p.Materials, MaterialLine{Role: RoleSub, Name: "Melee", Quantity: 7, UnitPrice: 3333})

	first, err := p.Quote()
	require.NoError(t, err)
	second, err := p.Quote()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateRejectsMismatchedDetail(t *testing.T) {
	p := ring()
	p.Category = Watch
	_, err := p.Quote()
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestValidateRequiresDetail(t *testing.T) {
	p := &Product{Category: Diamond, Name: "Loose 1ct"}
	assert.True(t, apperr.Is(p.Validate(), apperr.KindValidation))
}

func TestValidateRequiresName(t *testing.T) {
	p := ring()
	p.Name = "  "
	assert.True(t, apperr.Is(p.Validate(), apperr.KindValidation))
}

func TestGoldCategorySharesJewelryDetail(t *testing.T) {
	p := ring()
	p.Category = Gold
	p.SubCategory = "Bar"
	require.NoError(t, p.Validate())
}

func TestQuoteAtReferencePrice(t *testing.T) {
	p := ring()
	stored, err := p.Quote()
	require.NoError(t, err)

	live, err := p.QuoteAt(450000)
	require.NoError(t, err)

	// 18K at 450,000 per Don is 99,000/g.
	assert.InDelta(t, 198000, live.GoldCost, eps)
	assert.Greater(t, live.FinalPrice, stored.FinalPrice)

	// the stored detail is untouched
	assert.Equal(t, int64(50000), p.Detail.(JewelryDetail).GoldPricePerGram)
}

func TestQuoteAtIgnoresReferenceForWatches(t *testing.T) {
	p := &Product{
		Category: Watch, SubCategory: "Rolex", Name: "Submariner",
		Detail: WatchDetail{PurchaseCost: 100000, MarginPct: 30, VATPct: 10},
	}
	b, err := p.QuoteAt(999999)
	require.NoError(t, err)
	assert.InDelta(t, 133000, b.FinalPrice, eps)
}

func TestColorStoneVATOnMargin(t *testing.T) {
	p := &Product{
		Category: ColorStone, Name: "Sapphire",
		Detail: ColorStoneDetail{PurchaseCost: 100000, MarginPct: 30, VATPct: 10, TaxPct: 0},
	}
	b, err := p.Quote()
	require.NoError(t, err)
	assert.InDelta(t, 3000, b.VATAmount, eps)
	assert.InDelta(t, 133000, b.FinalPrice, eps)
}

func TestNormalizeCopiesBrandFromSubCategory(t *testing.T) {
	p := &Product{Category: Watch, SubCategory: " Omega ", Name: " Speedmaster ", Detail: WatchDetail{Brand: "old"}}
	p.Normalize()
	assert.Equal(t, "Omega", p.Detail.(WatchDetail).Brand)
	assert.Equal(t, "Speedmaster", p.Name)
}

func TestProductCode(t *testing.T) {
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "MT-J260309-001", ProductCode("mt", Jewelry, at, 1))
	assert.Equal(t, "DB-D260309-012", ProductCode("DB", Diamond, at, 12))
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"jewelry":     Jewelry,
		"Dia/Stone":   Diamond,
		"Certificate": ColorStone,
		" watch ":     Watch,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseCategory("Food")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRegistryCoversEveryCategory(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Schemas() {
		assert.NotEmpty(t, s.Fields, s.Category)
		assert.False(t, seen[s.Code], "duplicate code letter %s", s.Code)
		seen[s.Code] = true
	}
	assert.Len(t, seen, 6)
}
