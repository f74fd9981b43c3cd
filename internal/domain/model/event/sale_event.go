package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemData 事件內的交易明細
type SaleItemData struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	PriceOrigin string          `json:"price_origin"`
}

// SaleCompletedEvent 收銀結帳完成
// 下游消費者(儀表板統計、收據列印)以此為準，不回查DB
type SaleCompletedEvent struct {
	BaseEvent
	SaleID   string          `json:"sale_id"`
	MemberID uint            `json:"member_id"`
	Items    []SaleItemData  `json:"items"`
	Amount   decimal.Decimal `json:"amount"`
	SaleDate time.Time       `json:"sale_date"`
}

func NewSaleCompletedEvent(saleID string, memberID uint, items []SaleItemData, amount decimal.Decimal, saleDate time.Time) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseEvent: *NewBaseEvent(saleID, SaleCompletedEventName),
		SaleID:    saleID,
		MemberID:  memberID,
		Items:     items,
		Amount:    amount,
		SaleDate:  saleDate,
	}
}

func (e *SaleCompletedEvent) Type() EventType {
	return SaleCompletedEventName
}
