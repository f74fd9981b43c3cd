package util

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR 以印尼幣格式輸出金額，例如 Rp 10.000
// 收據跟儀表板都用同一個格式
func FormatIDR(amount decimal.Decimal) string {
	return idrPrinter.Sprintf("Rp %v", number.Decimal(
		amount.InexactFloat64(),
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}
