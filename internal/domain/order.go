package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Order aggregates products with one shipping strategy and a distance.
// Totals are never stored: every getter recomputes from current state.
type Order struct {
	products   []Product
	shipping   ShippingStrategy
	distanceKM float64
}

// NewOrder rejects an empty basket, a nil strategy and a negative or
// non-finite distance. A zero distance is the default.
func NewOrder(products []Product, shipping ShippingStrategy, distanceKM float64) (*Order, error) {
	if len(products) == 0 {
		return nil, &OpError{Op: "order.new", Kind: KindEmptyOrder, Err: ErrEmptyOrder}
	}
	if shipping == nil {
		return nil, &OpError{Op: "order.new", Kind: KindInvalidOrder, Err: errors.New("shipping strategy is required")}
	}
	if err := ValidateDistance(distanceKM); err != nil {
		return nil, err
	}

	ps := make([]Product, len(products))
	copy(ps, products)

	return &Order{products: ps, shipping: shipping, distanceKM: distanceKM}, nil
}

// ValidateDistance accepts finite, non-negative kilometres.
func ValidateDistance(distanceKM float64) error {
	if math.IsNaN(distanceKM) || math.IsInf(distanceKM, 0) || distanceKM < 0 {
		return &OpError{
			Op:   "order.distance",
			Kind: KindInvalidDistance,
			Err:  fmt.Errorf("%w: %v km", ErrInvalidDistance, distanceKM),
		}
	}
	return nil
}

func (o *Order) Products() []Product {
	out := make([]Product, len(o.products))
	copy(out, o.products)
	return out
}

func (o *Order) Shipping() ShippingStrategy { return o.shipping }
func (o *Order) DistanceKM() float64 { return o.distanceKM }

func (o *Order) SetDistance(distanceKM float64) error {
	if err := ValidateDistance(distanceKM); err != nil {
		return err
	}
	o.distanceKM = distanceKM
	return nil
}

func (o *Order) SetShipping(s ShippingStrategy) error {
	if s == nil {
		return &OpError{Op: "order.set_shipping", Kind: KindInvalidOrder, Err: errors.New("shipping strategy is required")}
	}
	o.shipping = s
	return nil
}

func (o *Order) AddProduct(p Product) {
	o.products = append(o.products, p)
}

func (o *Order) ProductsCost() Amount {
	total := Zero
	for _, p := range o.products {
		total = total.Add(p.price)
	}
	return total
}

func (o *Order) ShippingCost() Amount {
	return o.shipping.Cost(o.distanceKM)
}

func (o *Order) TotalCost() Amount {
	return o.ProductsCost().Add(o.ShippingCost())
}

func (o *Order) DeliveryTime() string {
	return o.shipping.DeliveryTime()
}

// Describe is the one-line display summary. It is not the persisted form.
func (o *Order) Describe() string {
	items := make([]string, 0, len(o.products))
	for _, p := range o.products {
		items = append(items, fmt.Sprintf("%s ($%s)", p.name, p.price.String()))
	}

	return fmt.Sprintf("Order: %s | Shipping: %s | Products cost: $%s | Shipping cost: $%s | Total: $%s | Estimated time: %s",
		strings.Join(items, ", "),
		o.shipping.Describe(),
		o.ProductsCost().String(),
		o.ShippingCost().String(),
		o.TotalCost().String(),
		o.DeliveryTime(),
	)
}

func (o *Order) String() string { return o.Describe() }
