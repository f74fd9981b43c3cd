package model

import (
	"time"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID    uint                 `gorm:"primaryKey"`
	Name         string               `gorm:"not null;type:varchar(100)"`
	Satuan       string               `gorm:"not null;type:varchar(20)"`
	Harga        decimal.Decimal      `gorm:"not null;type:decimal(12,2)"`
	Modal        decimal.Decimal      `gorm:"not null;type:decimal(12,2)"`
	Expired      time.Time            `gorm:"null"`
	Barcode      string               `gorm:"type:varchar(50);index"`
	Note         string               `gorm:"type:text"`
	MemberPrices []ProductMemberPrice `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	GrosirTiers  []ProductGrosir      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	BaseModel
}

// ProductMemberPrice 商品的會員專屬價，同商品同會員至多一筆
type ProductMemberPrice struct {
	ProductID uint            `gorm:"primaryKey"`
	MemberID  uint            `gorm:"primaryKey"`
	Harga     decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	BaseModel
}

// ProductGrosir 商品的批發價階層
type ProductGrosir struct {
	ProductID uint            `gorm:"primaryKey"`
	MinQty    int             `gorm:"primaryKey"`
	Harga     decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	BaseModel
}

// ToDomain 轉換為收銀台使用的唯讀商品快照
func (p *Product) ToDomain() *domain.Product {
	out := &domain.Product{
		ProductID: p.ProductID,
		Name:      p.Name,
		Satuan:    p.Satuan,
		Harga:     p.Harga,
		Modal:     p.Modal,
		Expired:   p.Expired,
		Barcode:   p.Barcode,
		Note:      p.Note,
	}
	for _, mp := range p.MemberPrices {
		out.MemberPrices = append(out.MemberPrices, domain.MemberPrice{
			MemberID: mp.MemberID,
			Harga:    mp.Harga,
		})
	}
	for _, g := range p.GrosirTiers {
		out.GrosirTiers = append(out.GrosirTiers, domain.GrosirTier{
			MinQty: g.MinQty,
			Harga:  g.Harga,
		})
	}
	return out
}
