package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/eventdb"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/go-chi/chi/v5"
)

type SaleHandler struct {
	saleService service.ISaleService
}

func NewSaleHandler(saleService service.ISaleService) *SaleHandler {
	if saleService == nil {
		panic("saleService cannot be nil")
	}
	return &SaleHandler{saleService: saleService}
}

// ListSales 可帶start/end(RFC3339)篩選區間，不帶就是全部
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	startRaw, endRaw := q.Get("start"), q.Get("end")
	if startRaw != "" || endRaw != "" {
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			api.ErrorJSON(w, http.StatusBadRequest, err, "invalid start time")
			return
		}
		end, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			api.ErrorJSON(w, http.StatusBadRequest, err, "invalid end time")
			return
		}

		sales, err := h.saleService.GetSalesByDateRange(ctx, start, end)
		if err != nil {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to list sales")
			return
		}
		writeSales(w, sales)
		return
	}

	sales, err := h.saleService.GetAllSales(ctx)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to list sales")
		return
	}
	writeSales(w, sales)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleID")

	sale, err := h.saleService.GetSale(r.Context(), saleID)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotExist) {
			api.ErrorJSON(w, http.StatusNotFound, err, "sale not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to get sale")
		}
		return
	}
	api.SuccessJSON(w, dto.ConvertSaleToDTO(sale), nil)
}

// GetSaleAudit 讀回這筆交易在稽核stream上的完整事件
func (h *SaleHandler) GetSaleAudit(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleID")

	events, err := h.saleService.GetSaleAudit(r.Context(), saleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotExist):
			api.ErrorJSON(w, http.StatusNotFound, err, "sale not found")
		case errors.Is(err, service.ErrAuditNotEnabled):
			api.ErrorJSON(w, http.StatusServiceUnavailable, err, "audit stream is not enabled")
		case errors.Is(err, eventdb.ErrEventFormat):
			api.ErrorJSON(w, http.StatusInternalServerError, err, "audit stream contains malformed events")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to read sale audit")
		}
		return
	}
	api.SuccessJSON(w, events, map[string]any{"count": len(events)})
}

func writeSales(w http.ResponseWriter, sales []dbmodel.Sale) {
	out := make([]dto.SaleDTO, 0, len(sales))
	for i := range sales {
		out = append(out, dto.ConvertSaleToDTO(&sales[i]))
	}
	api.SuccessJSON(w, out, map[string]any{"count": len(out)})
}
