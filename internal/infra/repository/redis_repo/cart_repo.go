package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type CartRepoError error

var ErrCartNotFound CartRepoError = errors.New("cart snapshot not found")

// 收銀中斷(斷電、當機)後能從快照還原session
// 快照帶TTL，不是永久儲存
const cartSnapshotTTL = 12 * time.Hour

type CartRepo struct {
	cartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{cartCache: cartCache}
}

func generateCartKey(sessionID string) string {
	return fmt.Sprintf("cashier:%s:cart", sessionID)
}

// Save 覆寫整份購物車快照
func (r *CartRepo) Save(ctx context.Context, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	key := generateCartKey(cart.SessionID)
	if err := r.cartCache.Set(ctx, key, payload, cartSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	key := generateCartKey(sessionID)
	payload, err := r.cartCache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart snapshot: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("invalid cart snapshot for session %s: %w", sessionID, err)
	}
	return &cart, nil
}

func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	key := generateCartKey(sessionID)
	if err := r.cartCache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
