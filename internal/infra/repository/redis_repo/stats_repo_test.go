package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatsRepoTestSuite struct {
	suite.Suite
	statsRepo *StatsRepo
}

func (suite *StatsRepoTestSuite) SetupTest() {
	rdb := setupTestRedis()
	rdb.FlushDB(context.Background())
	suite.statsRepo = NewStatsRepo(rdb)
}

func TestStatsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StatsRepoTestSuite))
}

func (suite *StatsRepoTestSuite) TestAddSaleAccumulates() {
	ctx := context.Background()
	day := time.Now()

	assert.NoError(suite.T(), suite.statsRepo.AddSale(ctx, day, decimal.NewFromInt(27000), 3))
	assert.NoError(suite.T(), suite.statsRepo.AddSale(ctx, day, decimal.NewFromInt(10000), 1))

	stats, err := suite.statsRepo.GetDailyStats(ctx, day)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, stats.SaleCount)
	assert.Equal(suite.T(), 4, stats.ItemCount)
	assert.True(suite.T(), stats.Revenue.Equal(decimal.NewFromInt(37000)))
}

func (suite *StatsRepoTestSuite) TestGetDailyStatsEmptyDay() {
	stats, err := suite.statsRepo.GetDailyStats(context.Background(), time.Now().AddDate(0, 0, -30))
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), stats.SaleCount)
	assert.True(suite.T(), stats.Revenue.IsZero())
}
