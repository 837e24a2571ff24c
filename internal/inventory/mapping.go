package inventory

import (
	"fmt"

	"jewelry-pos/internal/catalog"
	"jewelry-pos/internal/models"
)

func toRow(p *catalog.Product) models.Product {
	return models.Product{
		ID:             p.ID,
		Code:           p.Code,
		ShopID:         p.ShopID,
		Category:       string(p.Category),
		SubCategory:    p.SubCategory,
		Name:           p.Name,
		ImageRep:       p.Images.Representative,
		ImageTop:       p.Images.Top,
		ImageFront:     p.Images.Front,
		ImageSide:      p.Images.Side,
		FactoryName:    p.Factory.Name,
		FactoryContact: p.Factory.Contact,
		ProductionTime: p.Factory.ProductionTime,
		TotalPrice:     p.TotalPrice,
		StockQuantity:  p.StockQuantity,
	}
}

// detailRow builds the detail table row for the product's variant with
// the rounded amounts of b.
func detailRow(productID uint, d catalog.Detail, b catalog.Breakdown) (any, error) {
	a := b.Rounded()
	switch v := d.(type) {
	case catalog.JewelryDetail:
		return &models.JewelryDetail{
			ProductID:        productID,
			GoldWeight:       v.GoldWeight,
			GoldPurity:       v.GoldPurity,
			GoldPriceApplied: v.GoldPricePerGram,
			LaborCost:        v.LaborCost,
			MarginPct:        v.MarginPct,
			DiscountPct:      v.DiscountPct,
			VATPct:           v.VATPct,
			FeePct:           v.FeePct,
			MaterialCost:     a.MaterialCost,
			ProductCost:      a.ProductCost,
			SellingPrice:     a.SellingPrice,
			VATAmount:        a.VATAmount,
			FeeAmount:        a.FeeAmount,
			FinalPrice:       a.FinalPrice,
		}, nil
	case catalog.DiamondDetail:
		return &models.DiamondDetail{
			ProductID:    productID,
			StoneType:    v.StoneType,
			Certificate:  v.Certificate,
			Shape:        v.Shape,
			Weight:       v.Carat,
			Color:        v.Color,
			Clarity:      v.Clarity,
			Cut:          v.Cut,
			Polish:       v.Polish,
			Symmetry:     v.Symmetry,
			Fluorescence: v.Fluorescence,
			PurchaseCost: v.PurchaseCost,
			MarginPct:    v.MarginPct,
			VATPct:       v.VATPct,
			SellingPrice: a.SellingPrice,
			VATAmount:    a.VATAmount,
			FinalPrice:   a.FinalPrice,
		}, nil
	case catalog.ColorStoneDetail:
		return &models.ColorStoneDetail{
			ProductID:    productID,
			StoneType:    v.StoneType,
			CertAgency:   v.CertAgency,
			Shape:        v.Shape,
			Weight:       v.Weight,
			Color:        v.Color,
			Tone:         v.Tone,
			Saturation:   v.Saturation,
			Clarity:      v.Clarity,
			Origin:       v.Origin,
			Comment:      v.Remark,
			PurchaseCost: v.PurchaseCost,
			MarginPct:    v.MarginPct,
			VATPct:       v.VATPct,
			TaxRate:      v.TaxPct,
			MarginAmount: a.MarginAmount,
			VATAmount:    a.VATAmount,
			TaxAmount:    a.TaxAmount,
			FinalPrice:   a.FinalPrice,
		}, nil
	case catalog.WatchDetail:
		return &models.WatchDetail{
			ProductID:    productID,
			Brand:        v.Brand,
			ModelNumber:  v.ModelNumber,
			Year:         v.Year,
			Size:         v.Size,
			Material:     v.Material,
			Color:        v.DialColor,
			Movement:     v.Movement,
			Band:         v.Band,
			HasCert:      v.HasCertificate,
			HasCase:      v.HasCase,
			Status:       v.Condition,
			PurchaseCost: v.PurchaseCost,
			MarginPct:    v.MarginPct,
			VATPct:       v.VATPct,
			TaxPct:       v.TaxPct,
			MarginAmount: a.MarginAmount,
			VATAmount:    a.VATAmount,
			TaxAmount:    a.TaxAmount,
			FinalPrice:   a.FinalPrice,
		}, nil
	case catalog.EtcDetail:
		return &models.EtcDetail{
			ProductID:    productID,
			Comments:     v.Remarks,
			Material:     v.Material,
			Size:         v.Size,
			PurchaseCost: v.PurchaseCost,
			MarginPct:    v.MarginPct,
			VATPct:       v.VATPct,
			TaxPct:       v.TaxPct,
			MarginAmount: a.MarginAmount,
			VATAmount:    a.VATAmount,
			TaxAmount:    a.TaxAmount,
			FinalPrice:   a.FinalPrice,
		}, nil
	}
	return nil, fmt.Errorf("unsupported detail %T", d)
}

func stoneRows(productID uint, lines []catalog.MaterialLine) []models.ProductStone {
	rows := make([]models.ProductStone, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, models.ProductStone{
			ProductID: productID,
			Position:  i,
			StoneType: string(l.Role),
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return rows
}

// fromRow rebuilds the aggregate. The detail variant is picked by the
// category so a stray row in another detail table is ignored.
func fromRow(m models.Product) (catalog.Product, error) {
	p := catalog.Product{
		ID:            m.ID,
		Code:          m.Code,
		ShopID:        m.ShopID,
		Category:      catalog.Category(m.Category),
		SubCategory:   m.SubCategory,
		Name:          m.Name,
		StockQuantity: m.StockQuantity,
		TotalPrice:    m.TotalPrice,
		Images: catalog.Images{
			Representative: m.ImageRep,
			Top:            m.ImageTop,
			Front:          m.ImageFront,
			Side:           m.ImageSide,
		},
		Factory: catalog.Factory{
			Name:           m.FactoryName,
			Contact:        m.FactoryContact,
			ProductionTime: m.ProductionTime,
		},
		CreatedAt: m.CreatedAt,
		Materials: make([]catalog.MaterialLine, 0, len(m.Stones)),
	}
	for _, s := range m.Stones {
		p.Materials = append(p.Materials, catalog.MaterialLine{
			Role:      catalog.Role(s.StoneType),
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
		})
	}

	schema, ok := catalog.Lookup(p.Category)
	if !ok {
		return p, fmt.Errorf("product %d has unknown category %q", m.ID, m.Category)
	}
	switch schema.Kind {
	case catalog.KindJewelry:
		if d := m.Jewelry; d != nil {
			p.Detail = catalog.JewelryDetail{
				GoldWeight:       d.GoldWeight,
				GoldPurity:       d.GoldPurity,
				GoldPricePerGram: d.GoldPriceApplied,
				LaborCost:        d.LaborCost,
				MarginPct:        d.MarginPct,
				DiscountPct:      d.DiscountPct,
				VATPct:           d.VATPct,
				FeePct:           d.FeePct,
			}
		}
	case catalog.KindDiamond:
		if d := m.Diamond; d != nil {
			p.Detail = catalog.DiamondDetail{
				StoneType:    d.StoneType,
				Certificate:  d.Certificate,
				Shape:        d.Shape,
				Carat:        d.Weight,
				Color:        d.Color,
				Clarity:      d.Clarity,
				Cut:          d.Cut,
				Polish:       d.Polish,
				Symmetry:     d.Symmetry,
				Fluorescence: d.Fluorescence,
				PurchaseCost: d.PurchaseCost,
				MarginPct:    d.MarginPct,
				VATPct:       d.VATPct,
			}
		}
	case catalog.KindColorStone:
		if d := m.ColorStone; d != nil {
			p.Detail = catalog.ColorStoneDetail{
				StoneType:    d.StoneType,
				CertAgency:   d.CertAgency,
				Shape:        d.Shape,
				Weight:       d.Weight,
				Color:        d.Color,
				Tone:         d.Tone,
				Saturation:   d.Saturation,
				Clarity:      d.Clarity,
				Origin:       d.Origin,
				Remark:       d.Comment,
				PurchaseCost: d.PurchaseCost,
				MarginPct:    d.MarginPct,
				VATPct:       d.VATPct,
				TaxPct:       d.TaxRate,
			}
		}
	case catalog.KindWatch:
		if d := m.Watch; d != nil {
			p.Detail = catalog.WatchDetail{
				Brand:          d.Brand,
				ModelNumber:    d.ModelNumber,
				Year:           d.Year,
				Size:           d.Size,
				Material:       d.Material,
				DialColor:      d.Color,
				Movement:       d.Movement,
				Band:           d.Band,
				HasCertificate: d.HasCert,
				HasCase:        d.HasCase,
				Condition:      d.Status,
				PurchaseCost:   d.PurchaseCost,
				MarginPct:      d.MarginPct,
				VATPct:         d.VATPct,
				TaxPct:         d.TaxPct,
			}
		}
	case catalog.KindEtc:
		if d := m.Etc; d != nil {
			p.Detail = catalog.EtcDetail{
				Material:     d.Material,
				Size:         d.Size,
				Remarks:      d.Comments,
				PurchaseCost: d.PurchaseCost,
				MarginPct:    d.MarginPct,
				VATPct:       d.VATPct,
				TaxPct:       d.TaxPct,
			}
		}
	}
	if p.Detail == nil {
		return p, fmt.Errorf("product %d has no %s detail", m.ID, schema.Kind)
	}
	return p, nil
}
