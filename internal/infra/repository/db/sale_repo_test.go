package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type SaleRepoTestSuite struct {
	suite.Suite
	db       *gorm.DB
	saleRepo *SaleRepo
}

func (suite *SaleRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_pos", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)

	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.saleRepo = NewSaleRepo(dbDao)
}

func (suite *SaleRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM sale_items")
	suite.db.Exec("DELETE FROM sales")
}

func (suite *SaleRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *SaleRepoTestSuite) newSale(saleDate time.Time, productID uint, qty int, unitPrice int64) *model.Sale {
	price := decimal.NewFromInt(unitPrice)
	subTotal := price.Mul(decimal.NewFromInt(int64(qty)))
	saleID := uuid.NewString()
	return &model.Sale{
		SaleID:    saleID,
		MemberID:  0,
		Amount:    subTotal,
		ItemCount: 1,
		SaleDate:  saleDate,
		Items: []model.SaleItem{
			{
				SaleID:      saleID,
				ProductID:   productID,
				ProductName: "Produk 1",
				Satuan:      "pcs",
				Quantity:    qty,
				UnitPrice:   price,
				SubTotal:    subTotal,
				PriceOrigin: "regular",
			},
		},
	}
}

func (suite *SaleRepoTestSuite) TestCreateAndGetSale() {
	ctx := context.Background()
	sale := suite.newSale(time.Now(), 1, 2, 10000)

	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, sale))

	found, err := suite.saleRepo.GetSaleByID(ctx, sale.SaleID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), found.Items, 1)
	require.True(suite.T(), found.Amount.Equal(decimal.NewFromInt(20000)))
	require.Equal(suite.T(), "regular", found.Items[0].PriceOrigin)
}

func (suite *SaleRepoTestSuite) TestGetSaleByIDNotFound() {
	_, err := suite.saleRepo.GetSaleByID(context.Background(), uuid.NewString())
	require.ErrorIs(suite.T(), err, ErrSaleNotFound)
}

func (suite *SaleRepoTestSuite) TestGetSalesByDateRange() {
	ctx := context.Background()
	now := time.Now()

	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now.AddDate(0, 0, -10), 1, 1, 10000)))
	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now.AddDate(0, 0, -1), 2, 1, 20000)))
	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now, 3, 1, 15000)))

	sales, err := suite.saleRepo.GetSalesByDateRange(ctx, now.AddDate(0, 0, -2), now.Add(time.Hour))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), sales, 2)
}

func (suite *SaleRepoTestSuite) TestGetTopProducts() {
	ctx := context.Background()
	now := time.Now()

	// 商品1賣5件，商品2賣2件
	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now, 1, 3, 10000)))
	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now, 1, 2, 10000)))
	require.NoError(suite.T(), suite.saleRepo.CreateSale(ctx, suite.newSale(now, 2, 2, 20000)))

	tops, err := suite.saleRepo.GetTopProducts(ctx, now.AddDate(0, 0, -7), 5)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), tops, 2)
	require.Equal(suite.T(), uint(1), tops[0].ProductID)
	require.Equal(suite.T(), 5, tops[0].Quantity)
	require.True(suite.T(), tops[0].Revenue.Equal(decimal.NewFromInt(50000)))
}

func TestSaleRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SaleRepoTestSuite))
}
