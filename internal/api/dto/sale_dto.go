package dto

import (
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/pos/internal/pkg/util"
	"github.com/shopspring/decimal"
)

type SaleItemDTO struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Satuan      string          `json:"satuan"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	PriceOrigin string          `json:"price_origin"`
}

type SaleDTO struct {
	SaleID        string          `json:"sale_id"`
	MemberID      uint            `json:"member_id"`
	Items         []SaleItemDTO   `json:"items"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	ItemCount     int             `json:"item_count"`
	SaleDate      time.Time       `json:"sale_date"`
}

type DashboardSummaryDTO struct {
	Date           string          `json:"date"`
	SaleCount      int             `json:"sale_count"`
	ItemCount      int             `json:"item_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenue_display"`
	TopProducts    []db.TopProduct `json:"top_products"`
}

func ConvertSaleToDTO(s *dbmodel.Sale) SaleDTO {
	out := SaleDTO{
		SaleID:        s.SaleID,
		MemberID:      s.MemberID,
		Items:         make([]SaleItemDTO, 0, len(s.Items)),
		Amount:        s.Amount,
		AmountDisplay: util.FormatIDR(s.Amount),
		ItemCount:     s.ItemCount,
		SaleDate:      s.SaleDate,
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, SaleItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Satuan:      item.Satuan,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			SubTotal:    item.SubTotal,
			PriceOrigin: item.PriceOrigin,
		})
	}
	return out
}
