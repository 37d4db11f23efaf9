package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)
	r.Get("/shipping-methods", handler.ShippingMethods)
	r.Post("/quotes", handler.Quote)
	r.Post("/comparisons", handler.Compare)
	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders", handler.ListOrders)
	return r
}
