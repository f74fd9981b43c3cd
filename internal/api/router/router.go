package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api"
	m "github.com/RoyceAzure/lab/pos/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, adminToken string, logger *zerolog.Logger, bucket *m.TokenBucket) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.RateLimitMiddleware(bucket))
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 收銀台，門市前台不掛token
		r.Route("/cashier/sessions", func(r chi.Router) {
			r.Post("/", server.CashierHandler.OpenSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Post("/restore", server.CashierHandler.RestoreSession)
				r.Delete("/", server.CashierHandler.CloseSession)
				r.Get("/cart", server.CashierHandler.GetCart)
				r.Put("/member", server.CashierHandler.SetMember)
				r.Post("/lines", server.CashierHandler.AddProduct)
				r.Put("/lines/{productID}/quantity", server.CashierHandler.SetQuantity)
				r.Put("/lines/{productID}/price", server.CashierHandler.SetManualPrice)
				r.Delete("/lines/{productID}", server.CashierHandler.RemoveLine)
				r.Get("/notifications", server.CashierHandler.DrainNotifications)
				r.Post("/checkout", server.CashierHandler.Checkout)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{productID}", server.ProductHandler.GetProduct)

			// 型錄維護走後台token
			r.Group(func(r chi.Router) {
				r.Use(m.StaticBearerMiddleware(adminToken))
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Put("/{productID}", server.ProductHandler.UpdateProduct)
				r.Delete("/{productID}", server.ProductHandler.DeleteProduct)
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", server.MemberHandler.ListMembers)
			r.Get("/{memberID}", server.MemberHandler.GetMember)

			r.Group(func(r chi.Router) {
				r.Use(m.StaticBearerMiddleware(adminToken))
				r.Post("/", server.MemberHandler.CreateMember)
				r.Delete("/{memberID}", server.MemberHandler.DeleteMember)
			})
		})

		r.Route("/sales", func(r chi.Router) {
			r.Use(m.StaticBearerMiddleware(adminToken))
			r.Get("/", server.SaleHandler.ListSales)
			r.Get("/{saleID}", server.SaleHandler.GetSale)
			r.Get("/{saleID}/audit", server.SaleHandler.GetSaleAudit)
		})

		r.With(m.StaticBearerMiddleware(adminToken)).
			Get("/dashboard/summary", server.DashboardHandler.Summary)

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", server.PreferenceHandler.GetPreferences)
			r.Put("/dark-mode", server.PreferenceHandler.SetDarkMode)
			r.Put("/sidebar-collapsed", server.PreferenceHandler.SetSidebarCollapsed)
			r.Put("/admin-mode", server.PreferenceHandler.SetAdminMode)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
