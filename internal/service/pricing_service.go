package service

import (
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

// IPricingService 定價規則引擎
// 純函數，不做任何I/O，每次輸入異動都必須重新呼叫
type IPricingService interface {
	Resolve(line *model.CartLine, member model.Member, quantity int) (decimal.Decimal, model.PriceOrigin)
	BestGrosirTier(tiers []model.GrosirTier, quantity int) (model.GrosirTier, bool)
}

type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Resolve 決定明細行的有效單價與價格來源
// 規則依嚴格優先序，先匹配者勝:
//  1. manual  - 手動覆寫存在時無條件優先
//  2. member  - 非walk-in會員且商品有該會員專屬價
//  3. grosir  - walk-in買家且數量達到批發階層門檻
//  4. regular - 加入當下的原價快照
//
// 會員價與批發價互斥，永遠不會疊加
func (s *PricingService) Resolve(line *model.CartLine, member model.Member, quantity int) (decimal.Decimal, model.PriceOrigin) {
	if line.ManualPrice != nil {
		return *line.ManualPrice, model.OriginManual
	}

	if !member.IsWalkIn() {
		for _, mp := range line.MemberPrices {
			if mp.MemberID == member.MemberID {
				return mp.Harga, model.OriginMember
			}
		}
		return line.OriginalHarga, model.OriginRegular
	}

	if tier, ok := s.BestGrosirTier(line.GrosirTiers, quantity); ok {
		return tier.Harga, model.OriginGrosir
	}

	return line.OriginalHarga, model.OriginRegular
}

// BestGrosirTier 在數量門檻內挑出 MinQty 最大的階層
// 階層未排序，需全部掃過；沒有任何階層達標時回傳 false
func (s *PricingService) BestGrosirTier(tiers []model.GrosirTier, quantity int) (model.GrosirTier, bool) {
	var best model.GrosirTier
	found := false
	for _, t := range tiers {
		if quantity < t.MinQty {
			continue
		}
		if !found || t.MinQty > best.MinQty {
			best = t
			found = true
		}
	}
	return best, found
}
