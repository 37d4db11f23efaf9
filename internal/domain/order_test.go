package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func laptop() Product { return MustProduct("Gamer Laptop", 2500000) }
func mouse() Product { return MustProduct("Mouse gamer", 35000) }
func keyboard() Product { return MustProduct("Mechanical Keyboard", 85000) }

func TestOrder_StandardScenario(t *testing.T) {
	o, err := NewOrder([]Product{laptop(), mouse()}, NewStandardShipping(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := o.ProductsCost().String(); got != "2535000" {
		t.Fatalf("ProductsCost() = %s", got)
	}
	if got := o.ShippingCost().String(); got != "5000" {
		t.Fatalf("ShippingCost() = %s", got)
	}
	if got := o.TotalCost().String(); got != "2540000" {
		t.Fatalf("TotalCost() = %s", got)
	}
	if got := o.DeliveryTime(); got != "5-7 business days" {
		t.Fatalf("DeliveryTime() = %q", got)
	}
}

func TestOrder_DroneScenario(t *testing.T) {
	o, err := NewOrder([]Product{mouse()}, NewDroneShipping(), 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := o.ShippingCost().String(); got != "50000" {
		t.Fatalf("ShippingCost() = %s", got)
	}
	if got := o.TotalCost().String(); got != "85000" {
		t.Fatalf("TotalCost() = %s", got)
	}
	if got := o.DeliveryTime(); got != "2-4 hours" {
		t.Fatalf("DeliveryTime() = %q", got)
	}
}

func TestOrder_ProductsCostIgnoresOrdering(t *testing.T) {
	perms := [][]Product{
		{laptop(), mouse(), keyboard()},
		{keyboard(), laptop(), mouse()},
		{mouse(), keyboard(), laptop()},
	}
	for i, ps := range perms {
		o, err := NewOrder(ps, NewCustomShipping(), 50)
		if err != nil {
			t.Fatalf("perm %d: %v", i, err)
		}
		if got := o.ProductsCost().String(); got != "2620000" {
			t.Fatalf("perm %d: ProductsCost() = %s", i, got)
		}
	}
}

func TestOrder_TotalIsSumOfParts(t *testing.T) {
	strategies := []ShippingStrategy{NewStandardShipping(), NewExpressShipping(), NewCustomShipping(), NewDroneShipping()}
	for _, s := range strategies {
		for _, d := range []float64{0, 5, 10, 25, 50, 123.75} {
			o, err := NewOrder([]Product{laptop(), keyboard()}, s, d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sum := o.ProductsCost().Add(o.ShippingCost())
			if !o.TotalCost().Equal(sum) {
				t.Fatalf("%T at %v km: total %s != %s", s, d, o.TotalCost(), sum)
			}
		}
	}
}

func TestOrder_RejectsEmptyProducts(t *testing.T) {
	_, err := NewOrder(nil, NewStandardShipping(), 0)
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if !IsKind(err, KindEmptyOrder) {
		t.Fatalf("expected kind empty_order")
	}
}

func TestOrder_RejectsNilStrategy(t *testing.T) {
	_, err := NewOrder([]Product{mouse()}, nil, 0)
	if !IsKind(err, KindInvalidOrder) {
		t.Fatalf("expected invalid_order, got %v", err)
	}
}

func TestOrder_RejectsBadDistance(t *testing.T) {
	for _, d := range []float64{-1, -0.01, math.NaN(), math.Inf(1)} {
		_, err := NewOrder([]Product{mouse()}, NewCustomShipping(), d)
		if !errors.Is(err, ErrInvalidDistance) {
			t.Fatalf("distance %v: expected ErrInvalidDistance, got %v", d, err)
		}
	}
}

func TestOrder_DerivedValuesFollowMutation(t *testing.T) {
	o, err := NewOrder([]Product{mouse()}, NewCustomShipping(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := o.ShippingCost().String(); got != "10000" {
		t.Fatalf("ShippingCost() = %s", got)
	}

	if err := o.SetDistance(20); err != nil {
		t.Fatalf("SetDistance: %v", err)
	}
	if got := o.ShippingCost().String(); got != "20000" {
		t.Fatalf("after SetDistance, ShippingCost() = %s", got)
	}

	if err := o.SetShipping(NewExpressShipping()); err != nil {
		t.Fatalf("SetShipping: %v", err)
	}
	if got := o.DeliveryTime(); got != "1-2 business days" {
		t.Fatalf("after SetShipping, DeliveryTime() = %q", got)
	}

	o.AddProduct(keyboard())
	if got := o.TotalCost().String(); got != "135000" {
		t.Fatalf("after AddProduct, TotalCost() = %s", got)
	}

	if err := o.SetDistance(-5); err == nil {
		t.Fatalf("expected SetDistance(-5) to fail")
	}
	if o.DistanceKM() != 20 {
		t.Fatalf("expected distance unchanged after rejected update, got %v", o.DistanceKM())
	}
	if err := o.SetShipping(nil); err == nil {
		t.Fatalf("expected SetShipping(nil) to fail")
	}
}

func TestOrder_ProductsReturnsCopy(t *testing.T) {
	in := []Product{mouse()}
	o, err := NewOrder(in, NewStandardShipping(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in[0] = laptop()
	out := o.Products()
	out[0] = keyboard()

	if got := o.Products()[0].Name(); got != "Mouse gamer" {
		t.Fatalf("expected order to keep its own products, got %q", got)
	}
}

func TestOrder_Describe(t *testing.T) {
	o, err := NewOrder([]Product{laptop(), mouse()}, NewStandardShipping(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Order: Gamer Laptop ($2500000), Mouse gamer ($35000) | " +
		"Shipping: Standard Shipping - Economic option with fixed cost of $5,000 | " +
		"Products cost: $2535000 | Shipping cost: $5000 | Total: $2540000 | " +
		"Estimated time: 5-7 business days"
	if got := o.Describe(); got != want {
		t.Fatalf("Describe() =\n%s\nwant\n%s", got, want)
	}
	if o.String() != want {
		t.Fatalf("String() should match Describe()")
	}
}

func TestNewOrderRecord(t *testing.T) {
	o, err := NewOrder([]Product{mouse()}, NewDroneShipping(), 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := NewOrderRecord(o, "id-1", at)

	if rec.ID != "id-1" || !rec.SavedAt.Equal(at) {
		t.Fatalf("unexpected id/saved_at: %+v", rec)
	}
	if len(rec.Products) != 1 || rec.Products[0].Name != "Mouse gamer" {
		t.Fatalf("unexpected products: %+v", rec.Products)
	}
	if rec.ShippingMethod != NewDroneShipping().Describe() {
		t.Fatalf("unexpected shipping method %q", rec.ShippingMethod)
	}
	if rec.DistanceKM != 15 {
		t.Fatalf("unexpected distance %v", rec.DistanceKM)
	}
	if rec.ProductsCost.String() != "35000" || rec.ShippingCost.String() != "50000" || rec.TotalCost.String() != "85000" {
		t.Fatalf("unexpected costs: %s %s %s", rec.ProductsCost, rec.ShippingCost, rec.TotalCost)
	}
	if rec.DeliveryTime != "2-4 hours" {
		t.Fatalf("unexpected delivery time %q", rec.DeliveryTime)
	}
}
