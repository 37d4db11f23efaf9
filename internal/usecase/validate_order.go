package usecase

import (
	"context"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
)

type ValidateOrder struct {
	pricing
	orders ports.OrderLoader
}

func NewValidateOrder(ol ports.OrderLoader, opts ...Option) *ValidateOrder {
	return &ValidateOrder{pricing: newPricing(opts), orders: ol}
}

// Execute loads the order file and binds its shipping method without saving
// anything. The built order is returned so callers can show its totals.
func (uc *ValidateOrder) Execute(ctx context.Context, path string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec, err := uc.orders.LoadOrder(path)
	if err != nil {
		return nil, err
	}
	return uc.build(spec)
}
