package handlers

import (
	"fmt"

	"jewelry-pos/internal/apperr"
	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/refprice"
)

// ProductRequest is the create/update body. Exactly one detail object,
// the one matching the category, must be present.
type ProductRequest struct {
	Category      string          `json:"category"`
	SubCategory   string          `json:"sub_category"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stock_quantity"`
	Factory       catalog.Factory `json:"factory"`

	Jewelry    *catalog.JewelryDetail    `json:"jewelry,omitempty"`
	Diamond    *catalog.DiamondDetail    `json:"diamond,omitempty"`
	ColorStone *catalog.ColorStoneDetail `json:"color_stone,omitempty"`
	Watch      *catalog.WatchDetail      `json:"watch,omitempty"`
	Etc        *catalog.EtcDetail        `json:"etc,omitempty"`

	// UseReferencePrice prices jewelry gold at the current quote instead
	// of gold_price_per_gram.
	UseReferencePrice bool              `json:"use_reference_price"`
	Materials         []MaterialRequest `json:"materials"`
}

type MaterialRequest struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (r ProductRequest) toProduct(prices *refprice.Holder) (catalog.Product, error) {
	category, err := catalog.ParseCategory(r.Category)
	if err != nil {
		return catalog.Product{}, err
	}

	var details []catalog.Detail
	if r.Jewelry != nil {
		d := *r.Jewelry
		if r.UseReferencePrice && prices != nil {
			d.GoldPricePerGram = prices.PerGram(d.GoldPurity)
		}
		details = append(details, d)
	}
	if r.Diamond != nil {
		details = append(details, *r.Diamond)
	}
	if r.ColorStone != nil {
		details = append(details, *r.ColorStone)
	}
	if r.Watch != nil {
		details = append(details, *r.Watch)
	}
	if r.Etc != nil {
		details = append(details, *r.Etc)
	}
	if len(details) > 1 {
		return catalog.Product{}, apperr.Validation("detail", "send exactly one detail object")
	}

	p := catalog.Product{
		Category:      category,
		SubCategory:   r.SubCategory,
		Name:          r.Name,
		StockQuantity: r.StockQuantity,
		Factory:       r.Factory,
	}
	if len(details) == 1 {
		p.Detail = details[0]
	}
	for i, m := range r.Materials {
		role, err := catalog.ParseRole(m.Role)
		if err != nil {
			return catalog.Product{}, apperr.Validation(fmt.Sprintf("materials[%d].role", i), "must be Main or Sub")
		}
		p.Materials = append(p.Materials, catalog.MaterialLine{
			Role: role, Name: m.Name, Quantity: m.Quantity, UnitPrice: m.UnitPrice,
		})
	}
	return p, nil
}

// productView adds the detail kind so clients can decode the variant.
type productView struct {
	catalog.Product
	DetailKind catalog.DetailKind `json:"detail_kind"`
}

func view(p catalog.Product) productView {
	v := productView{Product: p}
	if p.Detail != nil {
		v.DetailKind = p.Detail.Kind()
	}
	return v
}
