package service

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ICatalogCache 型錄快取，可以不配置(nil)
type ICatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

type ICatalogService interface {
	Snapshot(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID uint) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]dbmodel.Product, error)
	CreateProduct(ctx context.Context, product *dbmodel.Product) error
	UpdateProduct(ctx context.Context, product *dbmodel.Product) error
	DeleteProduct(ctx context.Context, productID uint) error
}

// CatalogService 商品型錄
// 收銀台一個session讀一次Snapshot當唯讀資料，型錄異動作廢快取
type CatalogService struct {
	productRepo db.IProductRepository
	cache       ICatalogCache
	producer    producer.ISaleEventProducer
	logger      zerolog.Logger
}

func NewCatalogService(productRepo db.IProductRepository, cache ICatalogCache, eventProducer producer.ISaleEventProducer, logger zerolog.Logger) *CatalogService {
	return &CatalogService{productRepo: productRepo, cache: cache, producer: eventProducer, logger: logger}
}

// Snapshot 收銀台使用的整份型錄快照，cache優先
// 空型錄是合法狀態，回傳空slice不是錯誤
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, redis_repo.ErrCatalogCacheMiss) {
			s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to db")
		}
	}

	records, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, *records[i].ToDomain())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("failed to fill catalog cache")
		}
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uint) (*domain.Product, error) {
	record, err := s.productRepo.GetProductByID(ctx, productID)
	if errors.Is(err, db.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// GetProductByBarcode 給掃描槍用的條碼查詢
func (s *CatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	record, err := s.productRepo.GetProductByBarcode(ctx, barcode)
	if errors.Is(err, db.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]dbmodel.Product, error) {
	return s.productRepo.GetAllProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *dbmodel.Product) error {
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publishCatalogUpdated(ctx, product.ProductID, evt_model.CatalogActionCreated)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *dbmodel.Product) error {
	// Save是upsert語意，先確認商品存在避免更新變成新增
	if _, err := s.productRepo.GetProductByID(ctx, product.ProductID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publishCatalogUpdated(ctx, product.ProductID, evt_model.CatalogActionUpdated)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID uint) error {
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publishCatalogUpdated(ctx, productID, evt_model.CatalogActionDeleted)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

// 通知其他收銀台型錄已異動，發送失敗不影響主流程
func (s *CatalogService) publishCatalogUpdated(ctx context.Context, productID uint, action string) {
	if s.producer == nil {
		return
	}
	event := evt_model.NewCatalogUpdatedEvent(productID, action)
	if err := s.producer.ProduceCatalogUpdated(ctx, event); err != nil {
		s.logger.Error().Err(err).Uint("product_id", productID).Msg("failed to publish catalog updated event")
	}
}
