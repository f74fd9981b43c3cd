package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestCashier() *CashierService {
	return NewCashierService(NewPricingService(), nil, zerolog.Nop())
}

func productA() *model.Product {
	return &model.Product{
		ProductID: 1,
		Name:      "Produk A",
		Satuan:    "pcs",
		Harga:     decimal.NewFromInt(10000),
		GrosirTiers: []model.GrosirTier{
			{MinQty: 3, Harga: decimal.NewFromInt(9000)},
		},
	}
}

func productB() *model.Product {
	return &model.Product{
		ProductID: 2,
		Name:      "Produk B",
		Satuan:    "kg",
		Harga:     decimal.NewFromInt(20000),
		MemberPrices: []model.MemberPrice{
			{MemberID: 1, Harga: decimal.NewFromInt(19000)},
		},
	}
}

// 重複加入同商品只會有一行
func TestAddProductIncrementsExistingLine(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	for i := 0; i < 3; i++ {
		require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	}

	cart, err := cashier.Cart(sessionID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 3, cart.Lines[0].Quantity)
	require.Equal(t, 1, cart.LineCount)
}

func TestAddNilProductIsNoop(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	require.NoError(t, cashier.AddProduct(ctx, sessionID, nil))

	cart, err := cashier.Cart(sessionID)
	require.NoError(t, err)
	require.Empty(t, cart.Lines)
	require.True(t, cart.GrandTotal.IsZero())
}

// SubTotal與GrandTotal永遠一致
func TestTotalsConsistency(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productB()))
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 2, 4))

	cart, err := cashier.Cart(sessionID)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, line := range cart.Lines {
		expected := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		require.True(t, expected.Equal(line.SubTotal), "line %d", line.ProductID)
		sum = sum.Add(line.SubTotal)
	}
	require.True(t, sum.Equal(cart.GrandTotal))
	require.Equal(t, 2, cart.LineCount)
}

func TestSetQuantityClampsToOne(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 0))

	cart, _ := cashier.Cart(sessionID)
	require.Equal(t, 1, cart.Lines[0].Quantity)

	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, -5))
	require.Equal(t, 1, cart.Lines[0].Quantity)
}

// 手動價在數量異動後仍然不變
func TestManualPriceStickyAcrossQuantityChanges(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	require.NoError(t, cashier.SetManualPrice(ctx, sessionID, 1, decimal.NewFromInt(9500)))
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 10))

	cart, _ := cashier.Cart(sessionID)
	line := cart.Lines[0]
	require.Equal(t, model.OriginManual, line.Origin)
	require.True(t, decimal.NewFromInt(9500).Equal(line.UnitPrice))
	require.True(t, decimal.NewFromInt(95000).Equal(line.SubTotal))
}

func TestManualPriceNegativeIgnored(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	require.NoError(t, cashier.SetManualPrice(ctx, sessionID, 1, decimal.NewFromInt(-100)))

	cart, _ := cashier.Cart(sessionID)
	require.Nil(t, cart.Lines[0].ManualPrice)
	require.Equal(t, model.OriginRegular, cart.Lines[0].Origin)
}

func TestManualPriceClearedByRemoveAndReadd(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	require.NoError(t, cashier.SetManualPrice(ctx, sessionID, 1, decimal.NewFromInt(9500)))

	// 移除再加回是唯一清除手動價的方式
	require.NoError(t, cashier.RemoveLine(ctx, sessionID, 1))
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	cart, _ := cashier.Cart(sessionID)
	require.Nil(t, cart.Lines[0].ManualPrice)
	require.Equal(t, model.OriginRegular, cart.Lines[0].Origin)
	require.True(t, decimal.NewFromInt(10000).Equal(cart.Lines[0].UnitPrice))
}

// 移除不存在的行不是錯誤
func TestRemoveLineIdempotent(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	require.NoError(t, cashier.RemoveLine(ctx, sessionID, 999))

	cart, _ := cashier.Cart(sessionID)
	require.Len(t, cart.Lines, 1)

	require.NoError(t, cashier.RemoveLine(ctx, sessionID, 1))
	require.NoError(t, cashier.RemoveLine(ctx, sessionID, 1))
	require.Empty(t, cart.Lines)
	require.True(t, cart.GrandTotal.IsZero())
}

func TestSetMemberRejectedAfterFirstLine(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	memberA := model.Member{MemberID: 1, Name: "Member A"}
	require.NoError(t, cashier.SetMember(ctx, sessionID, memberA))

	require.NoError(t, cashier.AddProduct(ctx, sessionID, productB()))

	err := cashier.SetMember(ctx, sessionID, model.WalkInMember())
	require.ErrorIs(t, err, ErrCartNotEmpty)
}

func TestMemberPriceAppliedOnAdd(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.Member{MemberID: 1, Name: "Member A"})

	require.NoError(t, cashier.AddProduct(ctx, sessionID, productB()))

	cart, _ := cashier.Cart(sessionID)
	line := cart.Lines[0]
	require.Equal(t, model.OriginMember, line.Origin)
	require.True(t, decimal.NewFromInt(19000).Equal(line.UnitPrice))
}

// 停留在同一批發階層只通知一次
func TestGrosirNotificationFiresOncePerTransition(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	product := &model.Product{
		ProductID: 1,
		Name:      "Produk A",
		Harga:     decimal.NewFromInt(100),
		GrosirTiers: []model.GrosirTier{
			{MinQty: 5, Harga: decimal.NewFromInt(90)},
		},
	}
	require.NoError(t, cashier.AddProduct(ctx, sessionID, product))

	// 進入階層
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 5))
	// 同一階層內的連續增量
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 6))
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 7))

	toasts, err := cashier.DrainNotifications(sessionID)
	require.NoError(t, err)
	require.Len(t, toasts, 1)
	require.Contains(t, toasts[0].Message, "grosir")
	require.Contains(t, toasts[0].Message, "Produk A")

	// 退出階層要再通知一次(回到regular)
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 2))
	toasts, err = cashier.DrainNotifications(sessionID)
	require.NoError(t, err)
	require.Len(t, toasts, 1)
	require.Contains(t, toasts[0].Message, "regular")
}

func TestAddAtRegularPriceEmitsNoNotification(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))

	toasts, err := cashier.DrainNotifications(sessionID)
	require.NoError(t, err)
	require.Empty(t, toasts)
}

// 完整收銀情境：加商品、改數量進批發階層、手動價覆蓋
func TestCashierEndToEnd(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()
	sessionID := cashier.OpenSession(ctx, model.WalkInMember())

	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	cart, _ := cashier.Cart(sessionID)
	require.Equal(t, 1, cart.Lines[0].Quantity)
	require.True(t, decimal.NewFromInt(10000).Equal(cart.Lines[0].UnitPrice))
	require.True(t, decimal.NewFromInt(10000).Equal(cart.GrandTotal))

	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 3))
	require.True(t, decimal.NewFromInt(9000).Equal(cart.Lines[0].UnitPrice))
	require.True(t, decimal.NewFromInt(27000).Equal(cart.GrandTotal))

	require.NoError(t, cashier.SetManualPrice(ctx, sessionID, 1, decimal.NewFromInt(9500)))
	require.True(t, decimal.NewFromInt(9500).Equal(cart.Lines[0].UnitPrice))
	require.True(t, decimal.NewFromInt(28500).Equal(cart.GrandTotal))

	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 5))
	require.Equal(t, model.OriginManual, cart.Lines[0].Origin)
	require.True(t, decimal.NewFromInt(9500).Equal(cart.Lines[0].UnitPrice))
	require.True(t, decimal.NewFromInt(47500).Equal(cart.GrandTotal))
}

// fakeCartRepo 用JSON序列化模擬redis快照，還原出來的是獨立物件
type fakeCartRepo struct {
	saves int
	store map[string][]byte
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{store: make(map[string][]byte)}
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	f.store[cart.SessionID] = payload
	f.saves++
	return nil
}

func (f *fakeCartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	payload, ok := f.store[sessionID]
	if !ok {
		return nil, redis_repo.ErrCartNotFound
	}
	var cart model.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, sessionID string) error {
	delete(f.store, sessionID)
	return nil
}

func TestRestoreSessionRoundTrip(t *testing.T) {
	repo := newFakeCartRepo()
	cashier := NewCashierService(NewPricingService(), repo, zerolog.Nop())
	ctx := context.Background()

	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	require.NoError(t, cashier.SetQuantity(ctx, sessionID, 1, 4))
	require.NoError(t, cashier.SetManualPrice(ctx, sessionID, 1, decimal.NewFromInt(9500)))
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productB()))

	// 模擬收銀機重啟，新的service只剩快照
	restored := NewCashierService(NewPricingService(), repo, zerolog.Nop())
	require.NoError(t, restored.RestoreSession(ctx, sessionID))

	cart, err := restored.Cart(sessionID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	require.Equal(t, 2, cart.LineCount)

	lineA := cart.FindLine(1)
	require.NotNil(t, lineA)
	require.Equal(t, 4, lineA.Quantity)
	require.NotNil(t, lineA.ManualPrice)
	require.True(t, decimal.NewFromInt(9500).Equal(*lineA.ManualPrice))
	require.Equal(t, model.OriginManual, lineA.Origin)

	lineB := cart.FindLine(2)
	require.NotNil(t, lineB)
	require.Equal(t, model.OriginRegular, lineB.Origin)

	// 9500×4 + 20000×1
	require.True(t, decimal.NewFromInt(58000).Equal(cart.GrandTotal))

	// 還原後手動價依然黏住，且異動照樣鏡寫
	savesBefore := repo.saves
	require.NoError(t, restored.SetQuantity(ctx, sessionID, 1, 6))
	require.True(t, decimal.NewFromInt(9500).Equal(cart.FindLine(1).UnitPrice))
	require.Greater(t, repo.saves, savesBefore)
}

func TestRestoreSessionMissingSnapshot(t *testing.T) {
	cashier := NewCashierService(NewPricingService(), newFakeCartRepo(), zerolog.Nop())

	err := cashier.RestoreSession(context.Background(), "nope")

	require.ErrorIs(t, err, redis_repo.ErrCartNotFound)
}

func TestCloseSessionDeletesSnapshot(t *testing.T) {
	repo := newFakeCartRepo()
	cashier := NewCashierService(NewPricingService(), repo, zerolog.Nop())
	ctx := context.Background()

	sessionID := cashier.OpenSession(ctx, model.WalkInMember())
	require.NoError(t, cashier.AddProduct(ctx, sessionID, productA()))
	require.Contains(t, repo.store, sessionID)

	cashier.CloseSession(ctx, sessionID)
	require.NotContains(t, repo.store, sessionID)
}

func TestOperationsOnUnknownSession(t *testing.T) {
	cashier := newTestCashier()
	ctx := context.Background()

	require.ErrorIs(t, cashier.AddProduct(ctx, "nope", productA()), ErrSessionNotExist)
	require.ErrorIs(t, cashier.SetQuantity(ctx, "nope", 1, 2), ErrSessionNotExist)
	require.ErrorIs(t, cashier.RemoveLine(ctx, "nope", 1), ErrSessionNotExist)

	_, err := cashier.Cart("nope")
	require.ErrorIs(t, err, ErrSessionNotExist)
}
