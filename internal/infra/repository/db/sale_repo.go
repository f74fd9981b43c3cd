package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrSaleNotFound 交易不存在
	ErrSaleNotFound = errors.New("sale not found")
)

type ISaleRepository interface {
	CreateSale(ctx context.Context, sale *model.Sale) error
	GetSaleByID(ctx context.Context, saleID string) (*model.Sale, error)
	GetAllSales(ctx context.Context) ([]model.Sale, error)
	GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]model.Sale, error)
	GetTopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
}

type SaleRepo struct {
	db *DbDao
}

func NewSaleRepo(db *DbDao) *SaleRepo {
	return &SaleRepo{db: db}
}

// Create - 交易與明細在同一個transaction寫入
func (s *SaleRepo) CreateSale(ctx context.Context, sale *model.Sale) error {
	return s.db.WithContext(ctx).Create(sale).Error
}

func (s *SaleRepo) GetSaleByID(ctx context.Context, saleID string) (*model.Sale, error) {
	var sale model.Sale
	err := s.db.WithContext(ctx).Preload("Items").First(&sale, "sale_id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *SaleRepo) GetAllSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := s.db.WithContext(ctx).Preload("Items").Order("sale_date desc").Find(&sales).Error
	return sales, err
}

// Read - 根據日期範圍查詢交易
func (s *SaleRepo) GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := s.db.WithContext(ctx).Preload("Items").
		Where("sale_date BETWEEN ? AND ?", start, end).
		Order("sale_date desc").
		Find(&sales).Error
	return sales, err
}

// TopProduct 儀表板用的銷售排行
type TopProduct struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

func (s *SaleRepo) GetTopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	var tops []TopProduct
	err := s.db.WithContext(ctx).
		Model(&model.SaleItem{}).
		Select("sale_items.product_id, sale_items.product_name, sum(sale_items.quantity) as quantity, sum(sale_items.sub_total) as revenue").
		Joins("join sales on sales.sale_id = sale_items.sale_id").
		Where("sales.sale_date >= ?", since).
		Group("sale_items.product_id, sale_items.product_name").
		Order("revenue desc").
		Limit(limit).
		Scan(&tops).Error
	return tops, err
}
