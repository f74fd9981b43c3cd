package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

/*
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	capacity   int
	rate       float64
	refillRate time.Duration

	current      atomic.Int64
	lastRefilled atomic.Int64
	cancel       chan struct{}
	once         sync.Once //for close background
}

/*
請使用 defer 呼叫 Stop()
*/
func NewTokenBucket(capacity int, ratePerSecond float64, refillRate time.Duration) *TokenBucket {
	t := &TokenBucket{
		capacity:   capacity,
		rate:       ratePerSecond,
		refillRate: refillRate,
		cancel:     make(chan struct{}),
	}

	t.current.Store(int64(t.capacity))
	t.lastRefilled.Store(time.Now().UnixNano())
	go t.background()
	return t
}

func (t *TokenBucket) Allow() bool {
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

func (t *TokenBucket) countNewTokens(current int64, now int64) int64 {
	lastUpdate := t.lastRefilled.Load()
	elapsed := time.Duration(now - lastUpdate)
	tokenToAdd := int64(elapsed.Seconds() * t.rate)
	newTokens := current + tokenToAdd
	if newTokens > int64(t.capacity) {
		newTokens = int64(t.capacity)
	}
	return newTokens
}

func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.refillRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			for {
				now := time.Now().UnixNano()
				current := t.current.Load()
				newTokens := t.countNewTokens(current, now)
				if t.current.CompareAndSwap(current, newTokens) {
					t.lastRefilled.Store(now)
					break
				}
			}
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}

// RateLimitMiddleware 全站限流，擋掃描槍連點跟失控的輪詢
func RateLimitMiddleware(bucket *TokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !bucket.Allow() {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
