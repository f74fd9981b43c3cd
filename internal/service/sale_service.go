package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/eventdb"
	"github.com/RoyceAzure/lab/pos/internal/pkg/util"
	"github.com/rs/zerolog"
)

var (
	ErrCartEmpty       = errors.New("cart has no lines to save")
	ErrSaleNotExist    = errors.New("sale is not exist")
	ErrAuditNotEnabled = errors.New("sale audit stream is not enabled")
)

type ISaleService interface {
	SaveCart(ctx context.Context, cart *domain.Cart) (*dbmodel.Sale, error)
	GetSale(ctx context.Context, saleID string) (*dbmodel.Sale, error)
	GetAllSales(ctx context.Context) ([]dbmodel.Sale, error)
	GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]dbmodel.Sale, error)
	GetSaleAudit(ctx context.Context, saleID string) ([]evt_model.SaleCompletedEvent, error)
}

// SaleService 結帳落檔
// Postgres是真相來源；kafka事件與稽核stream都是旁路，失敗不會吞掉交易
type SaleService struct {
	saleRepo db.ISaleRepository
	producer producer.ISaleEventProducer
	eventDao *eventdb.EventDao
	logger   zerolog.Logger
}

func NewSaleService(saleRepo db.ISaleRepository, saleProducer producer.ISaleEventProducer, eventDao *eventdb.EventDao, logger zerolog.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		producer: saleProducer,
		eventDao: eventDao,
		logger:   logger,
	}
}

// SaveCart 把收銀台完成的購物車轉成交易並永久保存
// 金額直接取購物車的推導值，明細含價格來源標記
func (s *SaleService) SaveCart(ctx context.Context, cart *domain.Cart) (*dbmodel.Sale, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	sale := &dbmodel.Sale{
		SaleID:    util.GenerateSaleID(),
		MemberID:  cart.Member.MemberID,
		Amount:    cart.GrandTotal,
		ItemCount: cart.LineCount,
		SaleDate:  time.Now(),
	}
	for _, line := range cart.Lines {
		sale.Items = append(sale.Items, dbmodel.SaleItem{
			SaleID:      sale.SaleID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Satuan:      line.Satuan,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			SubTotal:    line.SubTotal,
			PriceOrigin: string(line.Origin),
		})
	}

	if err := s.saleRepo.CreateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.publishSaleCompleted(ctx, cart, sale)
	return sale, nil
}

func (s *SaleService) publishSaleCompleted(ctx context.Context, cart *domain.Cart, sale *dbmodel.Sale) {
	items := make([]evt_model.SaleItemData, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, evt_model.SaleItemData{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			SubTotal:    line.SubTotal,
			PriceOrigin: string(line.Origin),
		})
	}
	event := evt_model.NewSaleCompletedEvent(sale.SaleID, sale.MemberID, items, sale.Amount, sale.SaleDate)

	if s.producer != nil {
		if err := s.producer.ProduceSaleCompleted(ctx, event); err != nil {
			s.logger.Error().Err(err).Str("sale_id", sale.SaleID).Msg("failed to publish sale completed event")
		}
	}
	if s.eventDao != nil {
		streamID := eventdb.SaleStreamID(sale.SaleID)
		if err := s.eventDao.AppendEvent(ctx, streamID, string(event.Type()), event); err != nil {
			s.logger.Error().Err(err).Str("sale_id", sale.SaleID).Msg("failed to append sale audit event")
		}
	}
}

func (s *SaleService) GetSale(ctx context.Context, saleID string) (*dbmodel.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(ctx, saleID)
	if errors.Is(err, db.ErrSaleNotFound) {
		return nil, ErrSaleNotExist
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSaleAudit 讀回sale的稽核軌跡
// Postgres先確認sale存在，stream才是事件來源
func (s *SaleService) GetSaleAudit(ctx context.Context, saleID string) ([]evt_model.SaleCompletedEvent, error) {
	if s.eventDao == nil {
		return nil, ErrAuditNotEnabled
	}
	if _, err := s.GetSale(ctx, saleID); err != nil {
		return nil, err
	}

	resolved, err := s.eventDao.ReadEvents(ctx, eventdb.SaleStreamID(saleID))
	if err != nil {
		return nil, fmt.Errorf("failed to read sale audit stream: %w", err)
	}
	return eventdb.DecodeSaleEvents(resolved)
}

func (s *SaleService) GetAllSales(ctx context.Context) ([]dbmodel.Sale, error) {
	return s.saleRepo.GetAllSales(ctx)
}

func (s *SaleService) GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]dbmodel.Sale, error) {
	return s.saleRepo.GetSalesByDateRange(ctx, start, end)
}
