package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type DashboardSummary struct {
	Date        string          `json:"date"`
	SaleCount   int             `json:"sale_count"`
	ItemCount   int             `json:"item_count"`
	Revenue     decimal.Decimal `json:"revenue"`
	TopProducts []db.TopProduct `json:"top_products"`
}

type IDashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

// DashboardService 儀表板摘要
// 當日數字走redis計數器(由sale事件消費者累加)，排行榜走Postgres彙總
type DashboardService struct {
	saleRepo  db.ISaleRepository
	statsRepo *redis_repo.StatsRepo
	logger    zerolog.Logger
}

const topProductLimit = 5

func NewDashboardService(saleRepo db.ISaleRepository, statsRepo *redis_repo.StatsRepo, logger zerolog.Logger) *DashboardService {
	return &DashboardService{saleRepo: saleRepo, statsRepo: statsRepo, logger: logger}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()
	summary := &DashboardSummary{
		Date:    now.Format("2006-01-02"),
		Revenue: decimal.Zero,
	}

	if s.statsRepo != nil {
		stats, err := s.statsRepo.GetDailyStats(ctx, now)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to read daily stats")
		} else {
			summary.SaleCount = stats.SaleCount
			summary.ItemCount = stats.ItemCount
			summary.Revenue = stats.Revenue
		}
	}

	startOfWeek := now.AddDate(0, 0, -7)
	tops, err := s.saleRepo.GetTopProducts(ctx, startOfWeek, topProductLimit)
	if err != nil {
		return nil, err
	}
	summary.TopProducts = tops
	return summary, nil
}
