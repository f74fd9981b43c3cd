package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
	searcher       *service.ProductSearcher
}

func NewProductHandler(catalogService service.ICatalogService, searcher *service.ProductSearcher) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{
		catalogService: catalogService,
		searcher:       searcher,
	}
}

func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 掃描槍路徑，條碼精確比對
	if barcode := r.URL.Query().Get("barcode"); barcode != "" {
		product, err := h.catalogService.GetProductByBarcode(ctx, barcode)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				api.ErrorJSON(w, http.StatusNotFound, err, "product not found")
			} else {
				api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to get product")
			}
			return
		}
		api.SuccessJSON(w, product, nil)
		return
	}

	// 有query參數就走模糊搜尋，比對品名跟商品ID
	if query := r.URL.Query().Get("q"); query != "" && h.searcher != nil {
		products := h.searcher.SearchNow(ctx, query)
		api.SuccessJSON(w, products, map[string]any{"count": len(products)})
		return
	}

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to list products")
		return
	}

	out := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, dto.ConvertProductToDTO(&products[i]))
	}
	api.SuccessJSON(w, out, map[string]any{"count": len(out)})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			api.ErrorJSON(w, http.StatusNotFound, err, "product not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to get product")
		}
		return
	}
	api.SuccessJSON(w, product, nil)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if req.Name == "" {
		api.ErrorJSON(w, http.StatusBadRequest, nil, "product name is required")
		return
	}

	product := req.ToModel(0)
	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to create product")
		return
	}
	api.SuccessJSON(w, dto.ConvertProductToDTO(product), nil)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	var req dto.UpsertProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	product := req.ToModel(productID)
	if err := h.catalogService.UpdateProduct(r.Context(), product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			api.ErrorJSON(w, http.StatusNotFound, err, "product not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to update product")
		}
		return
	}
	api.SuccessJSON(w, dto.ConvertProductToDTO(product), nil)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "productID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			api.ErrorJSON(w, http.StatusNotFound, err, "product not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to delete product")
		}
		return
	}
	api.SuccessJSON(w, map[string]uint{"product_id": productID}, nil)
}
