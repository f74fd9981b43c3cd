package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/api"
	"github.com/RoyceAzure/lab/pos/internal/api/handler"
	"github.com/RoyceAzure/lab/pos/internal/api/middleware"
	"github.com/RoyceAzure/lab/pos/internal/api/router"
	"github.com/RoyceAzure/lab/pos/internal/appcontext"
	"github.com/RoyceAzure/lab/pos/internal/config"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	app.StartConsumers(consumerCtx)

	// 初始化 handler
	productHandler := handler.NewProductHandler(app.CatalogService, app.ProductSearcher)
	memberHandler := handler.NewMemberHandler(app.MemberService)
	cashierHandler := handler.NewCashierHandler(app.CashierService, app.CatalogService, app.MemberService, app.SaleService)
	saleHandler := handler.NewSaleHandler(app.SaleService)
	dashboardHandler := handler.NewDashboardHandler(app.DashboardService)
	preferenceHandler := handler.NewPreferenceHandler(app.PreferenceService)

	server := api.NewServer(productHandler, memberHandler, cashierHandler, saleHandler, dashboardHandler, preferenceHandler)

	// 設置路由
	bucket := middleware.NewTokenBucket(200, 100, time.Second)
	defer bucket.Stop()
	r := router.SetupRouter(server, app.Cf.AdminToken, &app.Logger, bucket)

	// 設定服務器參數
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDonwCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		stopConsumers()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDonwCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDonwCompleted
	log.Printf("closed completed")
}
