package catalog

// Detail is the category-specific record of a product. The set of
// implementations is closed: exactly one variant per product.
type Detail interface {
	Kind() DetailKind
	// Quote prices the detail. Only jewelry consumes the material lines.
	Quote(lines []MaterialLine) (Breakdown, error)
	sealed()
}

// JewelryDetail backs the Jewelry and Gold categories.
type JewelryDetail struct {
	GoldWeight       float64 `json:"gold_weight"`
	GoldPurity       string  `json:"gold_purity"`
	GoldPricePerGram int64   `json:"gold_price_per_gram"`
	LaborCost        int64   `json:"labor_cost"`
	MarginPct        float64 `json:"margin_pct"`
	// DiscountPct is recorded but not part of the formula.
	DiscountPct float64 `json:"discount_pct"`
	VATPct      float64 `json:"vat_pct"`
	FeePct      float64 `json:"fee_pct"`
}

func (JewelryDetail) Kind() DetailKind { return KindJewelry }
func (JewelryDetail) sealed()          {}

func (d JewelryDetail) Quote(lines []MaterialLine) (Breakdown, error) {
	if err := nonNegative(map[string]float64{"discount_pct": d.DiscountPct}); err != nil {
		return Breakdown{}, err
	}
	gold, stone, material, err := MaterialCost(d.GoldWeight, float64(d.GoldPricePerGram), lines)
	if err != nil {
		return Breakdown{}, err
	}
	b, err := PriceWithLabor(material, float64(d.LaborCost), d.MarginPct, d.VATPct, d.FeePct)
	if err != nil {
		return Breakdown{}, err
	}
	b.GoldCost, b.StoneCost = gold, stone
	return b, nil
}

// AtReferencePrice returns a copy priced with a live per-Don quote instead
// of the stored per-gram price.
func (d JewelryDetail) AtReferencePrice(basePerDon int64) JewelryDetail {
	d.GoldPricePerGram = AppliedPricePerGram(basePerDon, d.GoldPurity)
	return d
}

// DiamondDetail holds a loose diamond graded on the 4C.
type DiamondDetail struct {
	StoneType    string  `json:"stone_type"`
	Certificate  string  `json:"certificate"`
	Shape        string  `json:"shape"`
	Carat        float64 `json:"carat"`
	Color        string  `json:"color"`
	Clarity      string  `json:"clarity"`
	Cut          string  `json:"cut"`
	Polish       string  `json:"polish"`
	Symmetry     string  `json:"symmetry"`
	Fluorescence string  `json:"fluorescence"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
}

func (DiamondDetail) Kind() DetailKind { return KindDiamond }
func (DiamondDetail) sealed()          {}

func (d DiamondDetail) Quote([]MaterialLine) (Breakdown, error) {
	if err := nonNegative(map[string]float64{"carat": d.Carat}); err != nil {
		return Breakdown{}, err
	}
	return PriceDiamond(float64(d.PurchaseCost), d.MarginPct, d.VATPct)
}

type ColorStoneDetail struct {
	StoneType    string  `json:"stone_type"`
	CertAgency   string  `json:"cert_agency"`
	Shape        string  `json:"shape"`
	Weight       float64 `json:"weight"`
	Color        string  `json:"color"`
	Tone         string  `json:"tone"`
	Saturation   string  `json:"saturation"`
	Clarity      string  `json:"clarity"`
	Origin       string  `json:"origin"`
	Remark       string  `json:"remark"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	TaxPct       float64 `json:"tax_pct"`
}

func (ColorStoneDetail) Kind() DetailKind { return KindColorStone }
func (ColorStoneDetail) sealed()          {}

// Quote levies VAT on the margin amount, the same base Watch and Etc use.
func (d ColorStoneDetail) Quote([]MaterialLine) (Breakdown, error) {
	if err := nonNegative(map[string]float64{"weight": d.Weight}); err != nil {
		return Breakdown{}, err
	}
	return PriceOnMargin(float64(d.PurchaseCost), d.MarginPct, d.VATPct, d.TaxPct)
}

type WatchDetail struct {
	// Brand mirrors the product sub-category.
	Brand          string  `json:"brand"`
	ModelNumber    string  `json:"model_number"`
	Year           string  `json:"year"`
	Size           string  `json:"size"`
	Material       string  `json:"material"`
	DialColor      string  `json:"dial_color"`
	Movement       string  `json:"movement"`
	Band           string  `json:"band"`
	HasCertificate bool    `json:"has_certificate"`
	HasCase        bool    `json:"has_case"`
	Condition      string  `json:"condition"`
	PurchaseCost   int64   `json:"purchase_cost"`
	MarginPct      float64 `json:"margin_pct"`
	VATPct         float64 `json:"vat_pct"`
	TaxPct         float64 `json:"tax_pct"`
}

func (WatchDetail) Kind() DetailKind { return KindWatch }
func (WatchDetail) sealed()          {}

func (d WatchDetail) Quote([]MaterialLine) (Breakdown, error) {
	return PriceOnMargin(float64(d.PurchaseCost), d.MarginPct, d.VATPct, d.TaxPct)
}

type EtcDetail struct {
	Material     string  `json:"material"`
	Size         string  `json:"size"`
	Remarks      string  `json:"remarks"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	TaxPct       float64 `json:"tax_pct"`
}

func (EtcDetail) Kind() DetailKind { return KindEtc }
func (EtcDetail) sealed()          {}

func (d EtcDetail) Quote([]MaterialLine) (Breakdown, error) {
	return PriceOnMargin(float64(d.PurchaseCost), d.MarginPct, d.VATPct, d.TaxPct)
}
