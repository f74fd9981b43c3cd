package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInMemberID 是「一般客戶(Umum)」的保留會員ID
// 不會匹配任何商品的會員價，也是唯一適用批發價(grosir)的買家類別
const WalkInMemberID uint = 0

type Member struct {
	MemberID uint   `json:"member_id"`
	Name     string `json:"name"`
}

// WalkInMember 未選擇會員時的預設買家
func WalkInMember() Member {
	return Member{MemberID: WalkInMemberID, Name: "Umum"}
}

func (m Member) IsWalkIn() bool {
	return m.MemberID == WalkInMemberID
}

// MemberPrice 商品針對單一會員的專屬價格
// 每個商品同一會員至多一筆
type MemberPrice struct {
	MemberID uint            `json:"member_id"`
	Harga    decimal.Decimal `json:"harga"`
}

// GrosirTier 批發價階層，達到 MinQty 以上適用 Harga
// 儲存順序不保證排序，MinQty 依慣例唯一但不強制
type GrosirTier struct {
	MinQty int             `json:"min_qty"`
	Harga  decimal.Decimal `json:"harga"`
}

// Product 收銀台使用的商品快照
// 一次交易期間視為唯讀，不會與型錄即時同步
type Product struct {
	ProductID    uint            `json:"id"`
	Name         string          `json:"name"`
	Satuan       string          `json:"satuan"`
	Harga        decimal.Decimal `json:"harga"`
	Modal        decimal.Decimal `json:"modal"`
	Expired      time.Time       `json:"expired"`
	Barcode      string          `json:"barcode"`
	Note         string          `json:"note"`
	MemberPrices []MemberPrice   `json:"member_prices,omitempty"`
	GrosirTiers  []GrosirTier    `json:"harga_grosir,omitempty"`
}

// MemberPriceFor 回傳該會員的專屬價格，walk-in 永遠沒有
func (p *Product) MemberPriceFor(memberID uint) (decimal.Decimal, bool) {
	if memberID == WalkInMemberID {
		return decimal.Decimal{}, false
	}
	for _, mp := range p.MemberPrices {
		if mp.MemberID == memberID {
			return mp.Harga, true
		}
	}
	return decimal.Decimal{}, false
}
