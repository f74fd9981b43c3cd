package api

import "github.com/RoyceAzure/lab/pos/internal/api/handler"

type Server struct {
	ProductHandler    *handler.ProductHandler
	MemberHandler     *handler.MemberHandler
	CashierHandler    *handler.CashierHandler
	SaleHandler       *handler.SaleHandler
	DashboardHandler  *handler.DashboardHandler
	PreferenceHandler *handler.PreferenceHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	memberHandler *handler.MemberHandler,
	cashierHandler *handler.CashierHandler,
	saleHandler *handler.SaleHandler,
	dashboardHandler *handler.DashboardHandler,
	preferenceHandler *handler.PreferenceHandler,
) *Server {
	return &Server{
		ProductHandler:    productHandler,
		MemberHandler:     memberHandler,
		CashierHandler:    cashierHandler,
		SaleHandler:       saleHandler,
		DashboardHandler:  dashboardHandler,
		PreferenceHandler: preferenceHandler,
	}
}
