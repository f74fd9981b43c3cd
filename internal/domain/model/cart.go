package model

import (
	"github.com/shopspring/decimal"
)

// PriceOrigin 標記目前單價是由哪條規則決定
type PriceOrigin string

const (
	OriginManual  PriceOrigin = "manual"
	OriginMember  PriceOrigin = "member"
	OriginGrosir  PriceOrigin = "grosir"
	OriginRegular PriceOrigin = "regular"
)

// CartLine 交易中單一商品的明細
// 同一商品在購物車內只會有一行，重複加入只會增加數量
type CartLine struct {
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	Satuan        string          `json:"satuan"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"harga"`
	OriginalHarga decimal.Decimal `json:"original_harga"`
	// ManualPrice 一旦設定就優先於所有定價規則
	// 只有移除整行才會清除，數量或會員價異動都不影響
	ManualPrice *decimal.Decimal `json:"manual_harga,omitempty"`
	Origin      PriceOrigin      `json:"price_origin"`
	SubTotal    decimal.Decimal  `json:"sub_total"`

	// 加入當下的定價資料快照，重新計價時使用
	MemberPrices []MemberPrice `json:"member_prices,omitempty"`
	GrosirTiers  []GrosirTier  `json:"harga_grosir,omitempty"`
}

// Cart 收銀台正在建立的一筆交易
// 行的順序就是顯示順序，沒有其他語意
type Cart struct {
	SessionID  string          `json:"session_id"`
	Member     Member          `json:"member"`
	Lines      []*CartLine     `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	LineCount  int             `json:"line_count"`
}

func NewCart(sessionID string, member Member) *Cart {
	return &Cart{
		SessionID:  sessionID,
		Member:     member,
		GrandTotal: decimal.Zero,
	}
}

// FindLine 依商品ID取得明細行，找不到回傳 nil
func (c *Cart) FindLine(productID uint) *CartLine {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line
		}
	}
	return nil
}

// RecomputeTotals 重新計算總額與行數
// GrandTotal 與 LineCount 永遠是推導值，不允許外部直接寫入
func (c *Cart) RecomputeTotals() {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.SubTotal)
	}
	c.GrandTotal = total
	c.LineCount = len(c.Lines)
}
