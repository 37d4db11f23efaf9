package usecase

import (
	"strings"
	"testing"

	"github.com/aalvaropc/shipquote/internal/domain"
)

func TestListShippingMethods(t *testing.T) {
	methods, err := NewListShippingMethods().Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var kinds []string
	for _, m := range methods {
		kinds = append(kinds, m.Kind)
	}
	if got := strings.Join(kinds, ","); got != "custom,drone,express,standard" {
		t.Fatalf("unexpected kinds %s", got)
	}
	if methods[3].Method != "Standard Shipping - Economic option with fixed cost of $5,000" {
		t.Fatalf("unexpected standard label %q", methods[3].Method)
	}
}

func TestListShippingMethods_ReflectsRates(t *testing.T) {
	perKM := domain.NewAmount(800)
	methods, err := NewListShippingMethods(WithRates(map[string]domain.RateOverride{"custom": {PerKM: &perKM}})).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(methods[0].Method, "$800/km") {
		t.Fatalf("expected overridden per-km rate in label, got %q", methods[0].Method)
	}
}
