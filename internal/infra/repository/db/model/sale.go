package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale 已完成的一筆收銀交易
type Sale struct {
	SaleID    string          `gorm:"primaryKey;type:varchar(255)"`
	MemberID  uint            `gorm:"not null;default:0"` // 0 = walk-in
	Items     []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	Amount    decimal.Decimal `gorm:"not null;type:decimal(14,2)"`
	ItemCount int             `gorm:"not null"`
	SaleDate  time.Time       `gorm:"not null;index"`
	BaseModel
}

type SaleItem struct {
	SaleID      string          `gorm:"primaryKey;type:varchar(255)"` // 外鍵，關聯到 Sale
	ProductID   uint            `gorm:"primaryKey"`
	ProductName string          `gorm:"not null;type:varchar(100)"`
	Satuan      string          `gorm:"type:varchar(20)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"not null;type:decimal(12,2)"`
	SubTotal    decimal.Decimal `gorm:"not null;type:decimal(14,2)"`
	PriceOrigin string          `gorm:"not null;type:varchar(10);default:'regular'"`
	BaseModel
}
