package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/sahilm/fuzzy"
)

const defaultSearchDebounce = 300 * time.Millisecond

// productSource 讓fuzzy可以同時比對品名與ID
type productSource []domain.Product

func (s productSource) String(i int) string {
	return fmt.Sprintf("%d %s", s[i].ProductID, s[i].Name)
}

func (s productSource) Len() int {
	return len(s)
}

// ICatalogSnapshot 搜尋只需要整份型錄快照
type ICatalogSnapshot interface {
	Snapshot(ctx context.Context) ([]domain.Product, error)
}

// ProductSearcher 提供去抖動的商品搜尋
// 每次Search會重設計時器，等待期間的舊查詢直接作廢
// 只有最後一次查詢的結果會送進callback，逾時送達的舊結果一律丟棄
type ProductSearcher struct {
	mu       sync.Mutex
	catalog  ICatalogSnapshot
	debounce time.Duration
	timer    *time.Timer
	gen      uint64
}

func NewProductSearcher(catalog ICatalogSnapshot, debounce time.Duration) *ProductSearcher {
	if debounce <= 0 {
		debounce = defaultSearchDebounce
	}
	return &ProductSearcher{
		catalog:  catalog,
		debounce: debounce,
	}
}

// Search 排程一次搜尋，deliver只會收到最新一次查詢的結果
// 空白查詢回傳完整目錄
func (s *ProductSearcher) Search(ctx context.Context, query string, deliver func(query string, results []domain.Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		results := s.run(ctx, query)

		s.mu.Lock()
		stale := gen != s.gen
		s.mu.Unlock()
		if stale {
			return
		}
		deliver(query, results)
	})
}

// SearchNow 略過去抖動直接查詢，給需要同步結果的呼叫端
func (s *ProductSearcher) SearchNow(ctx context.Context, query string) []domain.Product {
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.run(ctx, query)
}

// Cancel 作廢所有排程中的查詢
func (s *ProductSearcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *ProductSearcher) run(ctx context.Context, query string) []domain.Product {
	products, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}

	matches := fuzzy.FindFrom(query, productSource(products))
	results := make([]domain.Product, 0, len(matches))
	for _, m := range matches {
		results = append(results, products[m.Index])
	}
	return results
}
