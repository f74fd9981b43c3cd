package redis_repo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// StatsRepo 儀表板的當日統計計數器
// 由sale事件的消費者累加，唯讀查詢不碰Postgres
type StatsRepo struct {
	statsCache *redis.Client
}

func NewStatsRepo(statsCache *redis.Client) *StatsRepo {
	return &StatsRepo{statsCache: statsCache}
}

func generateDailyStatsKey(day time.Time) string {
	return fmt.Sprintf("stats:daily:%s", day.Format("2006-01-02"))
}

// AddSale 原子累加一筆交易
// 使用 lua script 保證三個欄位一起更新
func (r *StatsRepo) AddSale(ctx context.Context, day time.Time, amount decimal.Decimal, itemCount int) error {
	const script = `
		redis.call('HINCRBY', KEYS[1], 'sale_count', 1)
		redis.call('HINCRBY', KEYS[1], 'item_count', ARGV[2])
		redis.call('HINCRBYFLOAT', KEYS[1], 'revenue', ARGV[1])
		redis.call('EXPIRE', KEYS[1], ARGV[3])
		return 1
	`
	key := generateDailyStatsKey(day)
	ttl := int((48 * time.Hour).Seconds())
	_, err := r.statsCache.Eval(ctx, script, []string{key},
		amount.String(), itemCount, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to add sale to daily stats: %w", err)
	}
	return nil
}

type DailyStats struct {
	SaleCount int             `json:"sale_count"`
	ItemCount int             `json:"item_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (r *StatsRepo) GetDailyStats(ctx context.Context, day time.Time) (*DailyStats, error) {
	fields, err := r.statsCache.HGetAll(ctx, generateDailyStatsKey(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats := &DailyStats{Revenue: decimal.Zero}
	if v, ok := fields["sale_count"]; ok {
		stats.SaleCount, _ = strconv.Atoi(v)
	}
	if v, ok := fields["item_count"]; ok {
		stats.ItemCount, _ = strconv.Atoi(v)
	}
	if v, ok := fields["revenue"]; ok {
		if d, err := decimal.NewFromString(v); err == nil {
			stats.Revenue = d
		}
	}
	return stats, nil
}
