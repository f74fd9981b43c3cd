package dto

import (
	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/notification"
	"github.com/RoyceAzure/lab/pos/internal/pkg/util"
	"github.com/shopspring/decimal"
)

type OpenSessionDTO struct {
	MemberID uint `json:"member_id"`
}

type SetMemberDTO struct {
	MemberID uint `json:"member_id"`
}

// AddProductDTO 給商品ID或條碼擇一
type AddProductDTO struct {
	ProductID uint   `json:"product_id"`
	Barcode   string `json:"barcode"`
}

type SetQuantityDTO struct {
	Quantity int `json:"quantity"`
}

// SetManualPriceDTO 手動價用字串收，非數字輸入不算錯誤、直接忽略
type SetManualPriceDTO struct {
	Price string `json:"price"`
}

type CartLineDTO struct {
	ProductID        uint             `json:"product_id"`
	Name             string           `json:"name"`
	Satuan           string           `json:"satuan"`
	Quantity         int              `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	UnitPriceDisplay string           `json:"unit_price_display"`
	OriginalHarga    decimal.Decimal  `json:"original_harga"`
	ManualPrice      *decimal.Decimal `json:"manual_price,omitempty"`
	Origin           string           `json:"origin"`
	SubTotal         decimal.Decimal  `json:"sub_total"`
}

type CartDTO struct {
	SessionID         string          `json:"session_id"`
	Member            MemberDTO       `json:"member"`
	Lines             []CartLineDTO   `json:"lines"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	GrandTotalDisplay string          `json:"grand_total_display"`
	LineCount         int             `json:"line_count"`
}

type ToastDTO struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

func ConvertCartToDTO(cart *domain.Cart) CartDTO {
	out := CartDTO{
		SessionID:         cart.SessionID,
		Member:            ConvertMemberToDTO(cart.Member),
		Lines:             make([]CartLineDTO, 0, len(cart.Lines)),
		GrandTotal:        cart.GrandTotal,
		GrandTotalDisplay: util.FormatIDR(cart.GrandTotal),
		LineCount:         cart.LineCount,
	}
	for _, line := range cart.Lines {
		out.Lines = append(out.Lines, CartLineDTO{
			ProductID:        line.ProductID,
			Name:             line.Name,
			Satuan:           line.Satuan,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			UnitPriceDisplay: util.FormatIDR(line.UnitPrice),
			OriginalHarga:    line.OriginalHarga,
			ManualPrice:      line.ManualPrice,
			Origin:           string(line.Origin),
			SubTotal:         line.SubTotal,
		})
	}
	return out
}

func ConvertToastsToDTO(toasts []notification.Toast) []ToastDTO {
	out := make([]ToastDTO, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, ToastDTO{Message: t.Message, Level: string(t.Level)})
	}
	return out
}
