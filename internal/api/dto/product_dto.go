package dto

import (
	"time"

	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/pos/internal/pkg/util"
	"github.com/shopspring/decimal"
)

type MemberPriceDTO struct {
	MemberID uint            `json:"member_id"`
	Harga    decimal.Decimal `json:"harga"`
}

type GrosirTierDTO struct {
	MinQty int             `json:"min_qty"`
	Harga  decimal.Decimal `json:"harga"`
}

type ProductDTO struct {
	ProductID    uint             `json:"product_id"`
	Name         string           `json:"name"`
	Satuan       string           `json:"satuan"`
	Harga        decimal.Decimal  `json:"harga"`
	HargaDisplay string           `json:"harga_display"`
	Modal        decimal.Decimal  `json:"modal"`
	Expired      *time.Time       `json:"expired,omitempty"`
	Barcode      string           `json:"barcode,omitempty"`
	Note         string           `json:"note,omitempty"`
	MemberPrices []MemberPriceDTO `json:"member_prices"`
	GrosirTiers  []GrosirTierDTO  `json:"grosir_tiers"`
}

type UpsertProductDTO struct {
	Name         string           `json:"name"`
	Satuan       string           `json:"satuan"`
	Harga        decimal.Decimal  `json:"harga"`
	Modal        decimal.Decimal  `json:"modal"`
	Expired      *time.Time       `json:"expired"`
	Barcode      string           `json:"barcode"`
	Note         string           `json:"note"`
	MemberPrices []MemberPriceDTO `json:"member_prices"`
	GrosirTiers  []GrosirTierDTO  `json:"grosir_tiers"`
}

func ConvertProductToDTO(p *dbmodel.Product) ProductDTO {
	out := ProductDTO{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Satuan:       p.Satuan,
		Harga:        p.Harga,
		HargaDisplay: util.FormatIDR(p.Harga),
		Modal:        p.Modal,
		Barcode:      p.Barcode,
		Note:         p.Note,
		MemberPrices: make([]MemberPriceDTO, 0, len(p.MemberPrices)),
		GrosirTiers:  make([]GrosirTierDTO, 0, len(p.GrosirTiers)),
	}
	if !p.Expired.IsZero() {
		expired := p.Expired
		out.Expired = &expired
	}
	for _, mp := range p.MemberPrices {
		out.MemberPrices = append(out.MemberPrices, MemberPriceDTO{MemberID: mp.MemberID, Harga: mp.Harga})
	}
	for _, g := range p.GrosirTiers {
		out.GrosirTiers = append(out.GrosirTiers, GrosirTierDTO{MinQty: g.MinQty, Harga: g.Harga})
	}
	return out
}

func (d *UpsertProductDTO) ToModel(productID uint) *dbmodel.Product {
	p := &dbmodel.Product{
		ProductID: productID,
		Name:      d.Name,
		Satuan:    d.Satuan,
		Harga:     d.Harga,
		Modal:     d.Modal,
		Barcode:   d.Barcode,
		Note:      d.Note,
	}
	if d.Expired != nil {
		p.Expired = *d.Expired
	}
	for _, mp := range d.MemberPrices {
		p.MemberPrices = append(p.MemberPrices, dbmodel.ProductMemberPrice{
			ProductID: productID,
			MemberID:  mp.MemberID,
			Harga:     mp.Harga,
		})
	}
	for _, g := range d.GrosirTiers {
		p.GrosirTiers = append(p.GrosirTiers, dbmodel.ProductGrosir{
			ProductID: productID,
			MinQty:    g.MinQty,
			Harga:     g.Harga,
		})
	}
	return p
}
