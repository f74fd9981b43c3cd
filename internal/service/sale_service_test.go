package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeSaleRepo struct {
	sales map[string]*dbmodel.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*dbmodel.Sale)}
}

func (f *fakeSaleRepo) CreateSale(ctx context.Context, sale *dbmodel.Sale) error {
	f.sales[sale.SaleID] = sale
	return nil
}

func (f *fakeSaleRepo) GetSaleByID(ctx context.Context, saleID string) (*dbmodel.Sale, error) {
	sale, ok := f.sales[saleID]
	if !ok {
		return nil, db.ErrSaleNotFound
	}
	return sale, nil
}

func (f *fakeSaleRepo) GetAllSales(ctx context.Context) ([]dbmodel.Sale, error) {
	out := make([]dbmodel.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSaleRepo) GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]dbmodel.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetTopProducts(ctx context.Context, since time.Time, limit int) ([]db.TopProduct, error) {
	return nil, nil
}

func TestGetSaleAuditWithoutEventStore(t *testing.T) {
	repo := newFakeSaleRepo()
	repo.sales["sale-1"] = &dbmodel.Sale{SaleID: "sale-1"}
	sales := NewSaleService(repo, nil, nil, zerolog.Nop())

	_, err := sales.GetSaleAudit(context.Background(), "sale-1")

	require.ErrorIs(t, err, ErrAuditNotEnabled)
}

func TestGetSaleNotExist(t *testing.T) {
	sales := NewSaleService(newFakeSaleRepo(), nil, nil, zerolog.Nop())

	_, err := sales.GetSale(context.Background(), "missing")

	require.ErrorIs(t, err, ErrSaleNotExist)
}
