// Package catalog is the product and pricing core: the category registry,
// the material cost calculator, the per-category formulas and the product
// aggregate that ties a detail variant to its stone lines.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"jewelry-pos/internal/apperr"
)

// ImageSlot names one of the four product photos.
type ImageSlot string

const (
	SlotRepresentative ImageSlot = "rep"
	SlotTop            ImageSlot = "top"
	SlotFront          ImageSlot = "front"
	SlotSide           ImageSlot = "side"
)

func ParseImageSlot(s string) (ImageSlot, error) {
	switch slot := ImageSlot(strings.ToLower(strings.TrimSpace(s))); slot {
	case SlotRepresentative, SlotTop, SlotFront, SlotSide:
		return slot, nil
	}
	return "", apperr.Validation("slot", "must be one of rep, top, front, side")
}

// Images holds opaque references returned by the image store.
type Images struct {
	Representative string `json:"rep,omitempty"`
	Top            string `json:"top,omitempty"`
	Front          string `json:"front,omitempty"`
	Side           string `json:"side,omitempty"`
}

type Factory struct {
	Name           string `json:"name,omitempty"`
	Contact        string `json:"contact,omitempty"`
	ProductionTime string `json:"production_time,omitempty"`
}

// Product is the aggregate persisted by the inventory store.
type Product struct {
	ID            uint           `json:"id"`
	Code          string         `json:"code"`
	ShopID        uint           `json:"shop_id"`
	Category      Category       `json:"category"`
	SubCategory   string         `json:"sub_category"`
	Name          string         `json:"name"`
	StockQuantity int            `json:"stock_quantity"`
	TotalPrice    int64          `json:"total_price"`
	Images        Images         `json:"images"`
	Factory       Factory        `json:"factory"`
	CreatedAt     time.Time      `json:"created_at"`
	Detail        Detail         `json:"detail"`
	Materials     []MaterialLine `json:"materials"`
}

// Validate checks the aggregate invariants without pricing it.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if p.StockQuantity < 0 {
		return apperr.Validation("stock_quantity", "must not be negative")
	}
	schema, ok := Lookup(p.Category)
	if !ok {
		return apperr.Validation("category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.Detail == nil {
		return apperr.Validation("detail", fmt.Sprintf("%s products need a %s detail", p.Category, schema.Kind))
	}
	if p.Detail.Kind() != schema.Kind {
		return apperr.Validation("detail", fmt.Sprintf("%s detail does not belong to category %s", p.Detail.Kind(), p.Category))
	}
	for i, l := range p.Materials {
		if err := l.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// Quote validates and prices the product from its stored inputs. It reads
// no state besides the receiver, so repeated calls agree.
func (p *Product) Quote() (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}
	return p.Detail.Quote(p.Materials)
}

// Reprice quotes the product and stores the rounded final price on it.
func (p *Product) Reprice() (Breakdown, error) {
	b, err := p.Quote()
	if err != nil {
		return Breakdown{}, err
	}
	p.TotalPrice = RoundWon(b.FinalPrice)
	return b, nil
}

// QuoteAt prices a jewelry product against a live per-Don quote. Other
// variants do not depend on the metal price and return their stored quote.
func (p *Product) QuoteAt(basePerDon int64) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}
	if jd, ok := p.Detail.(JewelryDetail); ok && basePerDon > 0 {
		return jd.AtReferencePrice(basePerDon).Quote(p.Materials)
	}
	return p.Detail.Quote(p.Materials)
}

// Normalize trims text inputs and fills derived fields.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.SubCategory = strings.TrimSpace(p.SubCategory)
	if wd, ok := p.Detail.(WatchDetail); ok && p.SubCategory != "" {
		wd.Brand = p.SubCategory
		p.Detail = wd
	}
	for i := range p.Materials {
		p.Materials[i].Name = strings.TrimSpace(p.Materials[i].Name)
	}
}

// ProductCode formats a shop-aware code: {shop}-{letter}{yymmdd}-{seq}.
func ProductCode(shopCode string, c Category, at time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", CodePrefix(shopCode, c, at), seq)
}

func CodePrefix(shopCode string, c Category, at time.Time) string {
	return fmt.Sprintf("%s-%s%s-", strings.ToUpper(shopCode), c.CodeLetter(), at.Format("060102"))
}
