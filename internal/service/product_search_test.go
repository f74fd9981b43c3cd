package service

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products []domain.Product
}

func (s *stubCatalog) Snapshot(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func searchCatalog() *stubCatalog {
	return &stubCatalog{products: []domain.Product{
		{ProductID: 1, Name: "Produk 1", Satuan: "pcs", Harga: decimal.NewFromInt(10000)},
		{ProductID: 2, Name: "Produk 2", Satuan: "kg", Harga: decimal.NewFromInt(20000)},
		{ProductID: 3, Name: "Beras Premium", Satuan: "kg", Harga: decimal.NewFromInt(15000)},
	}}
}

func TestSearchNowEmptyQueryReturnsAll(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 5*time.Millisecond)

	results := searcher.SearchNow(context.Background(), "   ")
	require.Len(t, results, 3)
}

func TestSearchNowFuzzyMatch(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 5*time.Millisecond)

	results := searcher.SearchNow(context.Background(), "beras")
	require.Len(t, results, 1)
	require.Equal(t, uint(3), results[0].ProductID)
}

func TestSearchNowMatchByID(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 5*time.Millisecond)

	results := searcher.SearchNow(context.Background(), "2")
	require.NotEmpty(t, results)
	require.Equal(t, uint(2), results[0].ProductID)
}

func TestSearchDebounceOnlyLastQueryDelivers(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 20*time.Millisecond)

	var mu sync.Mutex
	var delivered []string
	deliver := func(query string, results []domain.Product) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, query)
	}

	ctx := context.Background()
	searcher.Search(ctx, "p", deliver)
	searcher.Search(ctx, "pr", deliver)
	searcher.Search(ctx, "produk", deliver)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"produk"}, delivered)
}

func TestSearchCancelDropsPending(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 20*time.Millisecond)

	var mu sync.Mutex
	calls := 0

	searcher.Search(context.Background(), "produk", func(string, []domain.Product) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})
	searcher.Cancel()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, calls)
}

func TestSearchNowInvalidatesPending(t *testing.T) {
	searcher := NewProductSearcher(searchCatalog(), 20*time.Millisecond)

	var mu sync.Mutex
	calls := 0

	ctx := context.Background()
	searcher.Search(ctx, "produk", func(string, []domain.Product) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})
	results := searcher.SearchNow(ctx, "beras")
	require.Len(t, results, 1)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, calls)
}
