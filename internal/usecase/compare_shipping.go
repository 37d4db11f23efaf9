package usecase

import (
	"context"
	"sort"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
)

// ShippingQuote is the price of one basket under one shipping kind.
type ShippingQuote struct {
	Kind         string        `json:"kind"`
	Method       string        `json:"method"`
	ProductsCost domain.Amount `json:"products_cost"`
	ShippingCost domain.Amount `json:"shipping_cost"`
	TotalCost    domain.Amount `json:"total_cost"`
	DeliveryTime string        `json:"delivery_time"`
}

type CompareShipping struct {
	pricing
	orders ports.OrderLoader
}

func NewCompareShipping(ol ports.OrderLoader, opts ...Option) *CompareShipping {
	return &CompareShipping{pricing: newPricing(opts), orders: ol}
}

// Execute quotes the same basket with every registered shipping kind,
// cheapest first. Ties are broken by kind name.
func (uc *CompareShipping) Execute(ctx context.Context, products []domain.Product, distanceKM float64) ([]ShippingQuote, error) {
	kinds := uc.registry.Kinds()
	out := make([]ShippingQuote, 0, len(kinds))

	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s, err := uc.strategy(kind)
		if err != nil {
			return nil, err
		}
		o, err := domain.NewOrder(products, s, distanceKM)
		if err != nil {
			return nil, err
		}

		out = append(out, ShippingQuote{
			Kind:         kind,
			Method:       s.Describe(),
			ProductsCost: o.ProductsCost(),
			ShippingCost: o.ShippingCost(),
			TotalCost:    o.TotalCost(),
			DeliveryTime: o.DeliveryTime(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TotalCost.Equal(out[j].TotalCost) {
			return out[i].TotalCost.LessThan(out[j].TotalCost)
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

// ExecuteFile compares the basket of the order file at path. The file's own
// shipping method is ignored; distanceKM replaces its distance when set.
func (uc *CompareShipping) ExecuteFile(ctx context.Context, path string, distanceKM *float64) (domain.OrderSpec, []ShippingQuote, error) {
	spec, err := uc.orders.LoadOrder(path)
	if err != nil {
		return domain.OrderSpec{}, nil, err
	}
	if distanceKM != nil {
		spec.DistanceKM = *distanceKM
	}

	quotes, err := uc.Execute(ctx, spec.Products, spec.DistanceKM)
	if err != nil {
		return spec, nil, err
	}
	return spec, quotes, nil
}
