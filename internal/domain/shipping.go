package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShippingStrategy prices the delivery of an order. Implementations must be
// stateless: Cost is a pure function of the distance.
type ShippingStrategy interface {
	Cost(distanceKM float64) Amount
	DeliveryTime() string
	Describe() string
}

const (
	KindStandard = "standard"
	KindExpress  = "express"
	KindCustom   = "custom"
	KindDrone    = "drone"
)

// StandardShipping is the economic flat rate. Distance is accepted and ignored.
type StandardShipping struct {
	Base Amount
}

func NewStandardShipping() StandardShipping {
	return StandardShipping{Base: NewAmount(5000)}
}

func (s StandardShipping) Cost(float64) Amount { return s.Base }
func (s StandardShipping) DeliveryTime() string { return "5-7 business days" }
func (s StandardShipping) Describe() string {
	return "Standard Shipping - Economic option with fixed cost of " + s.Base.Label()
}

// ExpressShipping is the fast flat rate. Distance is accepted and ignored.
type ExpressShipping struct {
	Base Amount
}

func NewExpressShipping() ExpressShipping {
	return ExpressShipping{Base: NewAmount(15000)}
}

func (s ExpressShipping) Cost(float64) Amount { return s.Base }
func (s ExpressShipping) DeliveryTime() string { return "1-2 business days" }
func (s ExpressShipping) Describe() string {
	return "Express Shipping - Fast delivery with fixed cost of " + s.Base.Label()
}

// CustomShipping charges Base + PerKM for every km.
type CustomShipping struct {
	Base  Amount
	PerKM Amount
}

func NewCustomShipping() CustomShipping {
	return CustomShipping{Base: NewAmount(10000), PerKM: NewAmount(500)}
}

func (s CustomShipping) Cost(distanceKM float64) Amount {
	return s.Base.Add(perKM(s.PerKM, distanceKM))
}

func (s CustomShipping) DeliveryTime() string { return "2-4 business days, depending on distance" }

func (s CustomShipping) Describe() string {
	return fmt.Sprintf("Custom Shipping - Variable cost based on distance (%s base + %s/km)",
		s.Base.Label(), s.PerKM.Label())
}

// DroneShipping is piecewise linear: Base covers the first IncludedKM,
// every km after that adds PerKM. Both pieces meet at IncludedKM.
type DroneShipping struct {
	Base       Amount
	IncludedKM float64
	PerKM      Amount
}

func NewDroneShipping() DroneShipping {
	return DroneShipping{Base: NewAmount(25000), IncludedKM: 10, PerKM: NewAmount(5000)}
}

func (s DroneShipping) Cost(distanceKM float64) Amount {
	if distanceKM <= s.IncludedKM {
		return s.Base
	}
	return s.Base.Add(perKM(s.PerKM, distanceKM-s.IncludedKM))
}

func (s DroneShipping) DeliveryTime() string { return "2-4 hours" }

// Describe prints the drone rates without digit grouping ("$25000"), unlike
// the other kinds.
func (s DroneShipping) Describe() string {
	return fmt.Sprintf("Drone Shipping - Ultra-fast delivery ($%s up to %skm, +$%s/km after)",
		s.Base.String(), decimal.NewFromFloat(s.IncludedKM).String(), s.PerKM.String())
}

func perKM(rate Amount, km float64) Amount {
	return Amount{rate.Mul(decimal.NewFromFloat(km))}
}
