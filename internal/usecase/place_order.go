package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
)

// PlaceOrderOptions adjusts an order file before it is priced.
type PlaceOrderOptions struct {
	// ShippingKind replaces the file's shipping method when set.
	ShippingKind string
	// DistanceKM replaces the file's distance when set.
	DistanceKM *float64
	// DryRun prices the order without appending it to the store.
	DryRun bool
}

// Quote is a priced order and, when it was saved, the stored record.
type Quote struct {
	Name   string             `json:"name"`
	Record domain.OrderRecord `json:"record"`
	Saved  bool               `json:"saved"`

	Order *domain.Order `json:"-"`
}

type PlaceOrder struct {
	pricing
	orders ports.OrderLoader
	store  ports.OrderStore
}

// NewPlaceOrder wires the use case. A nil store behaves like DryRun.
func NewPlaceOrder(ol ports.OrderLoader, store ports.OrderStore, opts ...Option) *PlaceOrder {
	return &PlaceOrder{
		pricing: newPricing(opts),
		orders:  ol,
		store:   store,
	}
}

// Execute loads the order file at path, prices it and appends it to the store.
func (uc *PlaceOrder) Execute(ctx context.Context, path string, opts PlaceOrderOptions) (Quote, error) {
	spec, err := uc.orders.LoadOrder(path)
	if err != nil {
		return Quote{}, err
	}
	return uc.ExecuteSpec(ctx, spec, opts)
}

// ExecuteSpec prices an already-parsed order and appends it to the store.
func (uc *PlaceOrder) ExecuteSpec(ctx context.Context, spec domain.OrderSpec, opts PlaceOrderOptions) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}

	if k := strings.TrimSpace(opts.ShippingKind); k != "" {
		spec.ShippingKind = k
	}
	if opts.DistanceKM != nil {
		spec.DistanceKM = *opts.DistanceKM
	}

	order, err := uc.build(spec)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Name: spec.Name, Order: order}

	if opts.DryRun || uc.store == nil {
		q.Record = domain.NewOrderRecord(order, "", time.Time{})
		uc.log.Debug("order.quoted", "name", spec.Name, "shipping", spec.ShippingKind, "total_cost", order.TotalCost().String())
		return q, nil
	}

	rec, err := uc.store.Append(ctx, order)
	if err != nil {
		uc.log.Error("order.save_failed", "name", spec.Name, "err", err)
		return q, err
	}

	q.Record = rec
	q.Saved = true
	uc.log.Info("order.placed",
		"name", spec.Name,
		"id", rec.ID,
		"shipping", spec.ShippingKind,
		"distance_km", rec.DistanceKM,
		"total_cost", rec.TotalCost.String(),
	)
	return q, nil
}
