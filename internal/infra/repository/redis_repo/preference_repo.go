package redis_repo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PreferenceRepo 使用者介面偏好的持久化
// 結構:
//
//	pref:{userID}: {
//		dark_mode: "1",
//		sidebar_collapsed: "0",
//		admin_mode: "1",
//	}
type PreferenceRepo struct {
	prefCache *redis.Client
}

func NewPreferenceRepo(prefCache *redis.Client) *PreferenceRepo {
	return &PreferenceRepo{prefCache: prefCache}
}

func generatePrefKey(userID string) string {
	return fmt.Sprintf("pref:%s", userID)
}

func (r *PreferenceRepo) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	return r.prefCache.HGetAll(ctx, generatePrefKey(userID)).Result()
}

func (r *PreferenceRepo) Set(ctx context.Context, userID, field, value string) error {
	return r.prefCache.HSet(ctx, generatePrefKey(userID), field, value).Err()
}
