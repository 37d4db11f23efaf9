package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

// maxBodyBytes bounds request bodies; orders are small.
const maxBodyBytes = 1 << 20

// Handler serves the pricing use cases over HTTP.
type Handler struct {
	place   *usecase.PlaceOrder
	compare *usecase.CompareShipping
	list    *usecase.ListOrders
	methods *usecase.ListShippingMethods
	log     *slog.Logger
}

func NewHandler(
	place *usecase.PlaceOrder,
	compare *usecase.CompareShipping,
	list *usecase.ListOrders,
	methods *usecase.ListShippingMethods,
	log *slog.Logger,
) *Handler {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Handler{place: place, compare: compare, list: list, methods: methods, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ShippingMethods(w http.ResponseWriter, _ *http.Request) {
	methods, err := h.methods.Execute()
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

// Quote prices an order without saving it.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	h.placeOrder(w, r, true)
}

// CreateOrder prices an order and appends it to the store.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	h.placeOrder(w, r, false)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request, dryRun bool) {
	var req OrderRequest
	if !decode(w, r, &req) {
		return
	}

	products, err := mapProducts(req.Products)
	if err != nil {
		h.fail(w, err)
		return
	}

	spec := domain.OrderSpec{
		Name:         req.Name,
		Products:     products,
		ShippingKind: req.Shipping,
		DistanceKM:   req.DistanceKM,
	}

	q, err := h.place.ExecuteSpec(r.Context(), spec, usecase.PlaceOrderOptions{DryRun: dryRun})
	if err != nil {
		h.fail(w, err)
		return
	}

	status := http.StatusOK
	if q.Saved {
		status = http.StatusCreated
	}
	writeJSON(w, status, q.Record)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decode(w, r, &req) {
		return
	}

	products, err := mapProducts(req.Products)
	if err != nil {
		h.fail(w, err)
		return
	}

	quotes, err := h.compare.Execute(r.Context(), products, req.DistanceKM)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.list.Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func mapProducts(in []ProductDTO) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(in))
	for i, p := range in {
		if p.Price == nil {
			return nil, &domain.OpError{
				Op:   "httpapi.products",
				Kind: domain.KindInvalidProduct,
				Err:  fmt.Errorf("products[%d].price: product price is required", i),
			}
		}
		product, err := domain.NewProduct(p.Name, *p.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		out = append(out, product)
	}
	return out, nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// fail maps domain error kinds to HTTP status codes.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindEmptyOrder,
		domain.KindInvalidDistance,
		domain.KindInvalidProduct,
		domain.KindInvalidOrder,
		domain.KindUnknownShipping:
		status = http.StatusBadRequest
	case domain.KindCorruptStore:
		status = http.StatusConflict
	}

	code := string(kind)
	if code == "" {
		code = "internal"
	}

	if status >= http.StatusInternalServerError || errors.Is(err, domain.ErrCorruptStore) {
		h.log.Error("http.request_failed", "status", status, "kind", code, "err", err)
	}
	writeError(w, status, code, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
