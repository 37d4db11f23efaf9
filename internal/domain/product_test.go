package domain

import (
	"encoding/json"
	"testing"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  Mouse gamer ", NewAmount(35000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "Mouse gamer" {
		t.Fatalf("expected trimmed name, got %q", p.Name())
	}
	if p.Price().String() != "35000" {
		t.Fatalf("unexpected price %s", p.Price())
	}
}

func TestNewProduct_Invalid(t *testing.T) {
	if _, err := NewProduct("", NewAmount(1)); !IsKind(err, KindInvalidProduct) {
		t.Fatalf("expected invalid_product for empty name, got %v", err)
	}
	if _, err := NewProduct("Cable", NewAmount(-1)); !IsKind(err, KindInvalidProduct) {
		t.Fatalf("expected invalid_product for negative price, got %v", err)
	}
	if _, err := NewProduct("Sticker", Zero); err != nil {
		t.Fatalf("expected zero price to be accepted, got %v", err)
	}
}

func TestAmountJSONIsBareNumber(t *testing.T) {
	b, err := json.Marshal(ProductRecord{Name: "Café", Price: amountFromFloat(19.99)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"Café","price":19.99}` {
		t.Fatalf("unexpected json %s", b)
	}

	var back ProductRecord
	if err := json.Unmarshal([]byte(`{"name":"x","price":2500000}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Price.Equal(NewAmount(2500000)) {
		t.Fatalf("unexpected price %s", back.Price)
	}
}

func TestAmountLabel(t *testing.T) {
	cases := map[string]Amount{
		"$0":         Zero,
		"$500":       NewAmount(500),
		"$10,000":    NewAmount(10000),
		"$2,500,000": NewAmount(2500000),
		"$12.50":     amountFromFloat(12.5),
	}
	for want, a := range cases {
		if got := a.Label(); got != want {
			t.Errorf("Label(%s) = %q, want %q", a, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("85000")
	if err != nil || !a.Equal(NewAmount(85000)) {
		t.Fatalf("ParseAmount: %v %s", err, a)
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Fatalf("expected error")
	}
}
