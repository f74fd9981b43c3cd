package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CashierHandler 收銀台session的HTTP介面
// 購物車狀態只活在session裡，結帳才會落到sale
type CashierHandler struct {
	cashierService service.ICashierService
	catalogService service.ICatalogService
	memberService  service.IMemberService
	saleService    service.ISaleService
}

func NewCashierHandler(
	cashierService service.ICashierService,
	catalogService service.ICatalogService,
	memberService service.IMemberService,
	saleService service.ISaleService,
) *CashierHandler {
	if cashierService == nil {
		panic("cashierService cannot be nil")
	}
	return &CashierHandler{
		cashierService: cashierService,
		catalogService: catalogService,
		memberService:  memberService,
		saleService:    saleService,
	}
}

func (h *CashierHandler) writeCart(w http.ResponseWriter, sessionID string) {
	cart, err := h.cashierService.Cart(sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart), nil)
}

func (h *CashierHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	ctx := r.Context()
	member, err := h.memberService.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotExist) {
			api.ErrorJSON(w, http.StatusNotFound, err, "member not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to resolve member")
		}
		return
	}

	sessionID := h.cashierService.OpenSession(ctx, member)
	h.writeCart(w, sessionID)
}

// RestoreSession 從快照還原中斷的session，給收銀機重啟後接著結帳用
func (h *CashierHandler) RestoreSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.cashierService.RestoreSession(r.Context(), sessionID); err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session snapshot not found")
		return
	}
	h.writeCart(w, sessionID)
}

func (h *CashierHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.cashierService.CloseSession(r.Context(), sessionID)
	api.SuccessJSON(w, map[string]string{"session_id": sessionID}, nil)
}

func (h *CashierHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, chi.URLParam(r, "sessionID"))
}

func (h *CashierHandler) SetMember(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req dto.SetMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	ctx := r.Context()
	member, err := h.memberService.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotExist) {
			api.ErrorJSON(w, http.StatusNotFound, err, "member not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to resolve member")
		}
		return
	}

	if err := h.cashierService.SetMember(ctx, sessionID, member); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotExist):
			api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		case errors.Is(err, service.ErrCartNotEmpty):
			api.ErrorJSON(w, http.StatusConflict, err, "cart must be empty to switch member")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to set member")
		}
		return
	}
	h.writeCart(w, sessionID)
}

func (h *CashierHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req dto.AddProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	ctx := r.Context()
	var product *domain.Product
	var err error
	if req.Barcode != "" {
		product, err = h.catalogService.GetProductByBarcode(ctx, req.Barcode)
	} else {
		product, err = h.catalogService.GetProduct(ctx, req.ProductID)
	}
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			api.ErrorJSON(w, http.StatusNotFound, err, "product not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to resolve product")
		}
		return
	}

	if err := h.cashierService.AddProduct(ctx, sessionID, product); err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}
	h.writeCart(w, sessionID)
}

func (h *CashierHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	var req dto.SetQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	if err := h.cashierService.SetQuantity(r.Context(), sessionID, productID, req.Quantity); err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}
	h.writeCart(w, sessionID)
}

// SetManualPrice 非數字的價格輸入不報錯，維持原價
func (h *CashierHandler) SetManualPrice(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	var req dto.SetManualPriceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	price, parseErr := decimal.NewFromString(req.Price)
	if parseErr == nil {
		if err := h.cashierService.SetManualPrice(r.Context(), sessionID, productID, price); err != nil {
			api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
			return
		}
	}
	h.writeCart(w, sessionID)
}

func (h *CashierHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	if err := h.cashierService.RemoveLine(r.Context(), sessionID, productID); err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}
	h.writeCart(w, sessionID)
}

// DrainNotifications 取走session累積的價格切換提示，取走就清空
func (h *CashierHandler) DrainNotifications(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	toasts, err := h.cashierService.DrainNotifications(sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}
	api.SuccessJSON(w, dto.ConvertToastsToDTO(toasts), map[string]any{"count": len(toasts)})
}

// Checkout 把購物車轉成交易，成功後關閉session
func (h *CashierHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	ctx := r.Context()
	cart, err := h.cashierService.Cart(sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusNotFound, err, "session not found")
		return
	}

	sale, err := h.saleService.SaveCart(ctx, cart)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			api.ErrorJSON(w, http.StatusConflict, err, "cart is empty")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to save sale")
		}
		return
	}

	h.cashierService.CloseSession(ctx, sessionID)
	api.SuccessJSON(w, dto.ConvertSaleToDTO(sale), nil)
}
