package domain

import "time"

// ProductRecord is the persisted form of a Product.
type ProductRecord struct {
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

// OrderRecord is the persisted summary of one order, captured from the
// order's derived values at the moment it was saved.
type OrderRecord struct {
	ID             string          `json:"id,omitempty"`
	Products       []ProductRecord `json:"products"`
	ShippingMethod string          `json:"shipping_method"`
	DistanceKM     float64         `json:"distance_km"`
	ProductsCost   Amount          `json:"products_cost"`
	ShippingCost   Amount          `json:"shipping_cost"`
	TotalCost      Amount          `json:"total_cost"`
	DeliveryTime   string          `json:"delivery_time"`
	SavedAt        time.Time       `json:"saved_at,omitzero"`
}

func NewOrderRecord(o *Order, id string, savedAt time.Time) OrderRecord {
	products := make([]ProductRecord, 0, len(o.products))
	for _, p := range o.products {
		products = append(products, ProductRecord{Name: p.name, Price: p.price})
	}

	return OrderRecord{
		ID:             id,
		Products:       products,
		ShippingMethod: o.shipping.Describe(),
		DistanceKM:     o.distanceKM,
		ProductsCost:   o.ProductsCost(),
		ShippingCost:   o.ShippingCost(),
		TotalCost:      o.TotalCost(),
		DeliveryTime:   o.DeliveryTime(),
		SavedAt:        savedAt,
	}
}
