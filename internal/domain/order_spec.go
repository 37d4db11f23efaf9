package domain

// OrderSpec is an order definition (usually read from a file) before its
// shipping kind is bound to a strategy.
type OrderSpec struct {
	Name         string
	Products     []Product
	ShippingKind string
	DistanceKM   float64
}

// OrderRef is a lightweight reference to an order file on disk.
type OrderRef struct {
	Name string
	Path string
}

// WorkspaceSpec describes the workspace to initialize.
type WorkspaceSpec struct {
	Root string
}

// Build binds the order's shipping kind through reg and constructs the order.
// rates may be nil.
func (s OrderSpec) Build(reg *Registry, rates map[string]RateOverride) (*Order, error) {
	strategy, err := reg.New(s.ShippingKind, rates[normalizeKind(s.ShippingKind)])
	if err != nil {
		return nil, err
	}
	return NewOrder(s.Products, strategy, s.DistanceKM)
}
