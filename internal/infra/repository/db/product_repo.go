package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("MemberPrices").
		Preload("GrosirTiers").
		First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("MemberPrices").
		Preload("GrosirTiers").
		First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 整份型錄，收銀台開站時當作唯讀快照使用
func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("MemberPrices").
		Preload("GrosirTiers").
		Order("product_id").
		Find(&products).Error
	return products, err
}

// Update - 連同會員價與批發階層一起覆蓋
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ProductID).
			Unscoped().Delete(&model.ProductMemberPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ProductID).
			Unscoped().Delete(&model.ProductGrosir{}).Error; err != nil {
			return err
		}
		return tx.Save(product).Error
	})
}

func (s *ProductRepo) DeleteProduct(ctx context.Context, productID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Product{}, "product_id = ?", productID).Error
}
