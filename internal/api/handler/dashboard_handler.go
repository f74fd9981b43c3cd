package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/pkg/util"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type DashboardHandler struct {
	dashboardService service.IDashboardService
}

func NewDashboardHandler(dashboardService service.IDashboardService) *DashboardHandler {
	if dashboardService == nil {
		panic("dashboardService cannot be nil")
	}
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to build dashboard summary")
		return
	}

	api.SuccessJSON(w, dto.DashboardSummaryDTO{
		Date:           summary.Date,
		SaleCount:      summary.SaleCount,
		ItemCount:      summary.ItemCount,
		Revenue:        summary.Revenue,
		RevenueDisplay: util.FormatIDR(summary.Revenue),
		TopProducts:    summary.TopProducts,
	}, nil)
}
