package yamlorder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/shipquote/internal/domain"
)

func TestLoadOrder(t *testing.T) {
	path := filepath.Join("testdata", "order.yaml")
	spec, err := NewLoader().LoadOrder(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "gamer-setup" {
		t.Fatalf("expected name gamer-setup, got %q", spec.Name)
	}
	if spec.ShippingKind != "standard" {
		t.Fatalf("expected normalized kind standard, got %q", spec.ShippingKind)
	}
	if spec.DistanceKM != 10 {
		t.Fatalf("expected distance 10, got %v", spec.DistanceKM)
	}
	if len(spec.Products) != 2 || spec.Products[1].Name() != "Mouse gamer" {
		t.Fatalf("unexpected products: %+v", spec.Products)
	}

	o, err := spec.Build(domain.DefaultRegistry(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := o.TotalCost().String(); got != "2540000" {
		t.Fatalf("expected total 2540000, got %s", got)
	}
}

func TestLoadOrder_DecimalPriceAndDefaults(t *testing.T) {
	path := filepath.Join("testdata", "order_decimal.yaml")
	spec, err := NewLoader().LoadOrder(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "order_decimal" {
		t.Fatalf("expected file name fallback, got %q", spec.Name)
	}
	if spec.DistanceKM != 0 {
		t.Fatalf("expected default distance 0, got %v", spec.DistanceKM)
	}
	if got := spec.Products[0].Price().String(); got != "19.99" {
		t.Fatalf("expected exact price 19.99, got %s", got)
	}
}

func TestLoadOrder_InvalidField(t *testing.T) {
	path := filepath.Join("testdata", "order_invalid.yaml")
	_, err := NewLoader().LoadOrder(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "products[1].name") {
		t.Fatalf("expected field in error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadOrder_BadPrice(t *testing.T) {
	_, err := NewLoader().LoadOrder(filepath.Join("testdata", "order_badprice.yaml"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !strings.Contains(err.Error(), "products[0].price") {
		t.Fatalf("expected price field in error, got %v", err)
	}
}

func TestLoadOrder_Validation(t *testing.T) {
	cases := map[string]struct {
		content string
		field   string
	}{
		"missing shipping":  {"products:\n  - {name: a, price: 1}\n", "shipping"},
		"no products":       {"shipping: standard\n", "products"},
		"negative distance": {"shipping: custom\ndistance_km: -3\nproducts:\n  - {name: a, price: 1}\n", "distance_km"},
		"negative price":    {"shipping: custom\nproducts:\n  - {name: a, price: -1}\n", "products[0]"},
		"missing price":     {"shipping: custom\nproducts:\n  - {name: a}\n", "products[0].price"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "o.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := NewLoader().LoadOrder(path)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid_config, got %v", err)
			}
			if !strings.Contains(err.Error(), "field "+tc.field) {
				t.Fatalf("expected field %s in error, got %v", tc.field, err)
			}
		})
	}
}

func TestLoadOrder_MissingAndMalformed(t *testing.T) {
	if _, err := NewLoader().LoadOrder(filepath.Join(t.TempDir(), "nope.yaml")); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("products: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader().LoadOrder(path); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestListOrders(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "baskets")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"b.yaml":    "name: zeta\nshipping: standard\n",
		"a.yml":     "shipping: express\n",
		"notes.txt": "ignored",
		"c.yaml":    "name: alpha\nshipping: drone\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	refs, err := NewLoader(WithOrdersDir("baskets")).ListOrders(root)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}

	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
	}
	if got := strings.Join(names, ","); got != "a,alpha,zeta" {
		t.Fatalf("unexpected refs: %s", got)
	}
	if refs[0].Path != filepath.Join(dir, "a.yml") {
		t.Fatalf("unexpected path %s", refs[0].Path)
	}
}

func TestListOrders_MissingDir(t *testing.T) {
	_, err := NewLoader().ListOrders(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
