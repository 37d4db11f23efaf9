package yamlorder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	ordersDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{ordersDir: "orders"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithOrdersDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.ordersDir = dir
		}
	}
}

var _ ports.OrderLoader = (*Loader)(nil)

func (l *Loader) LoadOrder(path string) (domain.OrderSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.OrderSpec{}, &domain.OpError{
			Op:   "yamlorder.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yo yamlOrder
	if err := yaml.Unmarshal(b, &yo); err != nil {
		return domain.OrderSpec{}, &domain.OpError{
			Op:   "yamlorder.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yo)
}

// ListOrders returns the order files under <root>/<ordersDir>, sorted by name.
func (l *Loader) ListOrders(root string) ([]domain.OrderRef, error) {
	dir := l.ordersDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlorder.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.OrderRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readOrderName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.OrderRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readOrderName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlOrder struct {
	Name       string        `yaml:"name"`
	Shipping   string        `yaml:"shipping"`
	DistanceKM *float64      `yaml:"distance_km"`
	Products   []yamlProduct `yaml:"products"`
}

// Prices are read as text so decimal values keep their exact digits.
type yamlProduct struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

func mapAndValidate(path string, yo yamlOrder) (domain.OrderSpec, error) {
	if strings.TrimSpace(yo.Shipping) == "" {
		return domain.OrderSpec{}, invalidField(path, "shipping", "shipping method is required")
	}
	if len(yo.Products) == 0 {
		return domain.OrderSpec{}, invalidField(path, "products", "at least one product is required")
	}

	spec := domain.OrderSpec{
		Name:         strings.TrimSpace(yo.Name),
		ShippingKind: strings.ToLower(strings.TrimSpace(yo.Shipping)),
		Products:     make([]domain.Product, 0, len(yo.Products)),
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if yo.DistanceKM != nil {
		if err := domain.ValidateDistance(*yo.DistanceKM); err != nil {
			return domain.OrderSpec{}, invalidField(path, "distance_km", "must be a finite number >= 0")
		}
		spec.DistanceKM = *yo.DistanceKM
	}

	for i, p := range yo.Products {
		fieldPrefix := fmt.Sprintf("products[%d]", i)

		if strings.TrimSpace(p.Name) == "" {
			return domain.OrderSpec{}, invalidField(path, fieldPrefix+".name", "product name is required")
		}
		if strings.TrimSpace(p.Price) == "" {
			return domain.OrderSpec{}, invalidField(path, fieldPrefix+".price", "product price is required")
		}

		price, err := domain.ParseAmount(strings.TrimSpace(p.Price))
		if err != nil {
			return domain.OrderSpec{}, invalidField(path, fieldPrefix+".price", fmt.Sprintf("not a number: %q", p.Price))
		}

		product, err := domain.NewProduct(p.Name, price)
		if err != nil {
			return domain.OrderSpec{}, invalidField(path, fieldPrefix, err.Error())
		}
		spec.Products = append(spec.Products, product)
	}

	return spec, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlorder.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
