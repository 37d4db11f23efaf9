package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// RateOverride carries optional per-kind rate settings. Nil fields keep the
// kind's defaults; fields a kind does not use are ignored.
type RateOverride struct {
	Base       *Amount
	PerKM      *Amount
	IncludedKM *float64
}

// ShippingFactory builds a strategy from (possibly empty) rate overrides.
type ShippingFactory func(RateOverride) ShippingStrategy

// Registry maps shipping kind names to factories. Callers pick a strategy by
// name; nothing outside the registry branches on the kind.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ShippingFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]ShippingFactory{}}
}

// DefaultRegistry holds standard, express, custom and drone.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(KindStandard, func(o RateOverride) ShippingStrategy {
		s := NewStandardShipping()
		if o.Base != nil {
			s.Base = *o.Base
		}
		return s
	})
	_ = r.Register(KindExpress, func(o RateOverride) ShippingStrategy {
		s := NewExpressShipping()
		if o.Base != nil {
			s.Base = *o.Base
		}
		return s
	})
	_ = r.Register(KindCustom, func(o RateOverride) ShippingStrategy {
		s := NewCustomShipping()
		if o.Base != nil {
			s.Base = *o.Base
		}
		if o.PerKM != nil {
			s.PerKM = *o.PerKM
		}
		return s
	})
	_ = r.Register(KindDrone, func(o RateOverride) ShippingStrategy {
		s := NewDroneShipping()
		if o.Base != nil {
			s.Base = *o.Base
		}
		if o.PerKM != nil {
			s.PerKM = *o.PerKM
		}
		if o.IncludedKM != nil {
			s.IncludedKM = *o.IncludedKM
		}
		return s
	})
	return r
}

// Register adds or replaces a kind.
func (r *Registry) Register(kind string, f ShippingFactory) error {
	k := normalizeKind(kind)
	if k == "" {
		return &OpError{Op: "shipping.register", Kind: KindInvalidConfig, Err: errors.New("shipping kind is required")}
	}
	if f == nil {
		return &OpError{Op: "shipping.register", Kind: KindInvalidConfig, Err: fmt.Errorf("nil factory for %q", k)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[k] = f
	return nil
}

// New builds the strategy registered under kind.
func (r *Registry) New(kind string, o RateOverride) (ShippingStrategy, error) {
	k := normalizeKind(kind)

	r.mu.RLock()
	f, ok := r.factories[k]
	r.mu.RUnlock()

	if !ok {
		return nil, &OpError{
			Op:   "shipping.new",
			Kind: KindUnknownShipping,
			Err:  fmt.Errorf("%w %q (known: %s)", ErrUnknownShipping, kind, strings.Join(r.Kinds(), ", ")),
		}
	}
	return f(o), nil
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeKind(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
