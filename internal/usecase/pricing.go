package usecase

import (
	"io"
	"log/slog"

	"github.com/aalvaropc/shipquote/internal/domain"
)

// pricing is the shared setup of the order use cases: which shipping kinds
// exist, their configured rates and where to log.
type pricing struct {
	registry *domain.Registry
	rates    map[string]domain.RateOverride
	log      *slog.Logger
}

type Option func(*pricing)

func WithRegistry(r *domain.Registry) Option {
	return func(p *pricing) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithRates applies per-kind rate overrides (usually Config.Shipping).
func WithRates(rates map[string]domain.RateOverride) Option {
	return func(p *pricing) { p.rates = rates }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *pricing) {
		if l != nil {
			p.log = l
		}
	}
}

func newPricing(opts []Option) pricing {
	p := pricing{
		registry: domain.DefaultRegistry(),
		rates:    map[string]domain.RateOverride{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p pricing) strategy(kind string) (domain.ShippingStrategy, error) {
	return p.registry.New(kind, p.rates[kind])
}

func (p pricing) build(spec domain.OrderSpec) (*domain.Order, error) {
	return spec.Build(p.registry, p.rates)
}
