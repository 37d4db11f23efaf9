package domain

import (
	"errors"
	"strings"
)

// Product is an immutable name + price pair. Orders hold Products by value,
// so one Product can be shared by any number of orders.
type Product struct {
	name  string
	price Amount
}

func NewProduct(name string, price Amount) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, &OpError{
			Op:   "product.new",
			Kind: KindInvalidProduct,
			Err:  errors.New("product name is required"),
		}
	}
	if price.IsNegative() {
		return Product{}, &OpError{
			Op:   "product.new",
			Kind: KindInvalidProduct,
			Err:  errors.New("product price cannot be negative"),
		}
	}
	return Product{name: name, price: price}, nil
}

// MustProduct is NewProduct for fixtures; it panics on invalid input.
func MustProduct(name string, price int64) Product {
	p, err := NewProduct(name, NewAmount(price))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Product) Name() string { return p.name }
func (p Product) Price() Amount { return p.price }
