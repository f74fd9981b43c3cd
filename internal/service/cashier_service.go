package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/notification"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotExist = errors.New("cashier session is not exist")
	ErrCartNotEmpty    = errors.New("cart already has lines, member can not be changed")
)

// ICartSnapshotRepo 購物車快照的外部儲存
// 收銀過程鏡寫，session結束即刪除，非永久保存
type ICartSnapshotRepo interface {
	Save(ctx context.Context, cart *model.Cart) error
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type ICashierService interface {
	OpenSession(ctx context.Context, member model.Member) string
	RestoreSession(ctx context.Context, sessionID string) error
	CloseSession(ctx context.Context, sessionID string)
	Cart(sessionID string) (*model.Cart, error)
	SetMember(ctx context.Context, sessionID string, member model.Member) error
	AddProduct(ctx context.Context, sessionID string, product *model.Product) error
	SetQuantity(ctx context.Context, sessionID string, productID uint, quantity int) error
	SetManualPrice(ctx context.Context, sessionID string, productID uint, price decimal.Decimal) error
	RemoveLine(ctx context.Context, sessionID string, productID uint) error
	DrainNotifications(sessionID string) ([]notification.Toast, error)
}

type cashierSession struct {
	cart   *model.Cart
	toasts *notification.ToastQueue
}

// CashierService 收銀台的購物車聚合器
// 每個session只屬於一個收銀畫面，操作本身都在單一事件內完成
// map的鎖只保護session的存取，不是跨session的交易語意
type CashierService struct {
	mu       sync.Mutex
	sessions map[string]*cashierSession

	pricing  IPricingService
	cartRepo ICartSnapshotRepo
	logger   zerolog.Logger
}

func NewCashierService(pricing IPricingService, cartRepo ICartSnapshotRepo, logger zerolog.Logger) *CashierService {
	if pricing == nil {
		panic("pricing service cannot be nil")
	}
	return &CashierService{
		sessions: make(map[string]*cashierSession),
		pricing:  pricing,
		cartRepo: cartRepo,
		logger:   logger,
	}
}

// OpenSession 建立一筆空白交易，預設買家為walk-in
func (s *CashierService) OpenSession(ctx context.Context, member model.Member) string {
	sessionID := uuid.NewString()

	s.mu.Lock()
	s.sessions[sessionID] = &cashierSession{
		cart:   model.NewCart(sessionID, member),
		toasts: notification.NewToastQueue(0),
	}
	s.mu.Unlock()

	return sessionID
}

// RestoreSession 從快照還原中斷的session
func (s *CashierService) RestoreSession(ctx context.Context, sessionID string) error {
	if s.cartRepo == nil {
		return ErrSessionNotExist
	}
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}

	s.mu.Lock()
	s.sessions[sessionID] = &cashierSession{
		cart:   cart,
		toasts: notification.NewToastQueue(0),
	}
	s.mu.Unlock()

	return nil
}

// CloseSession 丟棄購物車與對應的快照
func (s *CashierService) CloseSession(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.cartRepo != nil {
		if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to delete cart snapshot")
		}
	}
}

// Cart 回傳session當前的購物車
// 回傳的是活物件不是副本：一個session只對應一台收銀畫面，
// 呼叫端是唯一寫入者，讀取期間不會有其他請求動同一台車
func (s *CashierService) Cart(sessionID string) (*model.Cart, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.cart, nil
}

// SetMember 設定這筆交易的買家
// 購物車一旦有明細就拒絕變更，會員價與非會員價混用是未定義行為
func (s *CashierService) SetMember(ctx context.Context, sessionID string, member model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotExist
	}
	if len(session.cart.Lines) > 0 {
		return ErrCartNotEmpty
	}
	session.cart.Member = member
	s.mirror(ctx, session.cart)
	return nil
}

// AddProduct 加入商品
// nil商品是no-op不是錯誤；已存在的商品等同數量+1
func (s *CashierService) AddProduct(ctx context.Context, sessionID string, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotExist
	}
	if product == nil {
		return nil
	}

	cart := session.cart
	if line := cart.FindLine(product.ProductID); line != nil {
		s.applyQuantity(session, line, line.Quantity+1)
		s.mirror(ctx, cart)
		return nil
	}

	line := &model.CartLine{
		ProductID:     product.ProductID,
		Name:          product.Name,
		Satuan:        product.Satuan,
		Quantity:      1,
		OriginalHarga: product.Harga,
		MemberPrices:  product.MemberPrices,
		GrosirTiers:   product.GrosirTiers,
	}
	cart.Lines = append(cart.Lines, line)
	s.resolveLine(session, line)
	cart.RecomputeTotals()
	s.mirror(ctx, cart)
	return nil
}

// SetQuantity 變更數量
// 小於1一律鉗制為1；批發價資格依數量而變，必須重新計價
func (s *CashierService) SetQuantity(ctx context.Context, sessionID string, productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotExist
	}
	line := session.cart.FindLine(productID)
	if line == nil {
		return nil
	}

	s.applyQuantity(session, line, quantity)
	s.mirror(ctx, session.cart)
	return nil
}

// SetManualPrice 手動覆寫單價
// 負數直接忽略，保留原本的覆寫(或沒有覆寫)狀態
// 覆寫一旦生效，只有移除整行才會解除
func (s *CashierService) SetManualPrice(ctx context.Context, sessionID string, productID uint, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotExist
	}
	line := session.cart.FindLine(productID)
	if line == nil {
		return nil
	}
	if price.IsNegative() {
		return nil
	}

	manual := price
	line.ManualPrice = &manual
	s.resolveLine(session, line)
	session.cart.RecomputeTotals()
	s.mirror(ctx, session.cart)
	return nil
}

// RemoveLine 移除明細行，對不存在的商品是冪等no-op
func (s *CashierService) RemoveLine(ctx context.Context, sessionID string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotExist
	}

	cart := session.cart
	for i, line := range cart.Lines {
		if line.ProductID == productID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			break
		}
	}
	cart.RecomputeTotals()
	s.mirror(ctx, cart)
	return nil
}

func (s *CashierService) DrainNotifications(sessionID string) ([]notification.Toast, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.toasts.Drain(), nil
}

func (s *CashierService) session(sessionID string) (*cashierSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotExist
	}
	return session, nil
}

func (s *CashierService) applyQuantity(session *cashierSession, line *model.CartLine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
	s.resolveLine(session, line)
	session.cart.RecomputeTotals()
}

// resolveLine 重新計價並維持 SubTotal = Quantity × UnitPrice 的不變量
// 價格來源發生轉換時發出一次性通知，停留在同一來源不重複發
func (s *CashierService) resolveLine(session *cashierSession, line *model.CartLine) {
	price, origin := s.pricing.Resolve(line, session.cart.Member, line.Quantity)

	prev := line.Origin
	line.UnitPrice = price
	line.Origin = origin
	line.SubTotal = price.Mul(decimal.NewFromInt(int64(line.Quantity)))

	if origin == prev {
		return
	}
	// 新行直接落在regular不需要通知
	if prev == "" && origin == model.OriginRegular {
		return
	}
	session.toasts.Notify(fmt.Sprintf("Using %s price for %s", origin, line.Name), notification.LevelInfo)
}

// mirror 把目前購物車鏡寫到快照儲存
// 快照失敗不影響收銀操作本身，只記log
func (s *CashierService) mirror(ctx context.Context, cart *model.Cart) {
	if s.cartRepo == nil {
		return
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Warn().Err(err).Str("session_id", cart.SessionID).Msg("failed to mirror cart snapshot")
	}
}
