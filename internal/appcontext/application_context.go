package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/RoyceAzure/lab/pos/internal/config"
	"github.com/RoyceAzure/lab/pos/internal/infra/consumer"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/eventdb"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf     *config.Config
	Logger zerolog.Logger

	DbConn      *gorm.DB
	DbDao       *db.DbDao
	RedisClient *redis.Client

	ProductRepo    db.IProductRepository
	MemberRepo     db.IMemberRepository
	SaleRepo       db.ISaleRepository
	CartRepo       *redis_repo.CartRepo
	CatalogCache   *redis_repo.CatalogCache
	PreferenceRepo *redis_repo.PreferenceRepo
	StatsRepo      *redis_repo.StatsRepo

	SaleProducer  producer.ISaleEventProducer
	StatsConsumer *consumer.SaleStatsConsumer
	EventDao      *eventdb.EventDao

	PricingService    service.IPricingService
	CashierService    service.ICashierService
	CatalogService    service.ICatalogService
	MemberService     service.IMemberService
	SaleService       service.ISaleService
	DashboardService  service.IDashboardService
	PreferenceService service.IPreferenceService
	ProductSearcher   *service.ProductSearcher
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: zerolog.New(os.Stdout).With().Timestamp().Str("module", cf.ModulerName).Logger(),
	}

	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpDbDao()
	if err != nil {
		return err
	}
	app.setUpRedis()
	app.setUpRepos()
	app.setUpKafka()
	err = app.setUpEventDb()
	if err != nil {
		return err
	}
	app.setUpServices()
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewDbDao(app.DbConn)
	err := app.DbDao.InitMigrate()
	if err != nil {
		return err
	}
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() {
	log.Printf("Start setup redis client")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
	log.Printf("Finish setup redis client")
}

func (app *ApplicationContext) setUpRepos() {
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.MemberRepo = db.NewMemberRepo(app.DbDao)
	app.SaleRepo = db.NewSaleRepo(app.DbDao)
	app.CartRepo = redis_repo.NewCartRepo(app.RedisClient)
	app.CatalogCache = redis_repo.NewCatalogCache(app.RedisClient)
	app.PreferenceRepo = redis_repo.NewPreferenceRepo(app.RedisClient)
	app.StatsRepo = redis_repo.NewStatsRepo(app.RedisClient)
}

func (app *ApplicationContext) setUpKafka() {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("kafka brokers not configured, sale events disabled")
		return
	}
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.SaleProducer = producer.NewSaleEventProducer(brokers, app.Cf.SaleTopic)
	app.StatsConsumer = consumer.NewSaleStatsConsumer(brokers, app.Cf.SaleTopic, app.Cf.StatsGroupID, app.StatsRepo, app.Logger)
}

func (app *ApplicationContext) setUpEventDb() error {
	if app.Cf.EventDbCnnStr == "" {
		log.Printf("eventdb not configured, sale audit stream disabled")
		return nil
	}

	settings, err := esdb.ParseConnectionString(app.Cf.EventDbCnnStr)
	if err != nil {
		return err
	}
	client, err := esdb.NewClient(settings)
	if err != nil {
		return err
	}
	app.EventDao = eventdb.NewEventDao(client)
	return nil
}

func (app *ApplicationContext) setUpServices() {
	app.PricingService = service.NewPricingService()
	app.CashierService = service.NewCashierService(app.PricingService, app.CartRepo, app.Logger)
	app.CatalogService = service.NewCatalogService(app.ProductRepo, app.CatalogCache, app.SaleProducer, app.Logger)
	app.MemberService = service.NewMemberService(app.MemberRepo)
	app.SaleService = service.NewSaleService(app.SaleRepo, app.SaleProducer, app.EventDao, app.Logger)
	app.DashboardService = service.NewDashboardService(app.SaleRepo, app.StatsRepo, app.Logger)
	app.PreferenceService = service.NewPreferenceService(app.PreferenceRepo)
	app.ProductSearcher = service.NewProductSearcher(app.CatalogService, 0)
}

// StartConsumers 啟動背景消費者，各自跑在獨立goroutine
func (app *ApplicationContext) StartConsumers(ctx context.Context) {
	if app.StatsConsumer == nil {
		return
	}
	go func() {
		if err := app.StatsConsumer.Start(ctx); err != nil {
			app.Logger.Error().Err(err).Msg("sale stats consumer stopped")
		}
	}()
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.StatsConsumer != nil {
			log.Printf("Stopping sale stats consumer...")
			app.StatsConsumer.Stop()
		}

		if app.SaleProducer != nil {
			log.Printf("Closing sale producer...")
			if err := app.SaleProducer.Close(); err != nil {
				log.Printf("sale producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis client shutdown error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDb, err := app.DbConn.DB(); err == nil {
				sqlDb.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
