package usecase

// ShippingMethod describes one registered shipping kind with its effective
// rates applied.
type ShippingMethod struct {
	Kind         string `json:"kind"`
	Method       string `json:"method"`
	DeliveryTime string `json:"delivery_time"`
}

type ListShippingMethods struct {
	pricing
}

func NewListShippingMethods(opts ...Option) *ListShippingMethods {
	return &ListShippingMethods{pricing: newPricing(opts)}
}

// Execute returns the methods sorted by kind.
func (uc *ListShippingMethods) Execute() ([]ShippingMethod, error) {
	kinds := uc.registry.Kinds()
	out := make([]ShippingMethod, 0, len(kinds))
	for _, kind := range kinds {
		s, err := uc.strategy(kind)
		if err != nil {
			return nil, err
		}
		out = append(out, ShippingMethod{
			Kind:         kind,
			Method:       s.Describe(),
			DeliveryTime: s.DeliveryTime(),
		})
	}
	return out, nil
}
