package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount is a money value. It serializes as a bare JSON number so persisted
// records stay readable ("price": 2500000, not "price": "2500000").
type Amount struct {
	decimal.Decimal
}

// Zero is the additive identity used when folding prices.
var Zero = Amount{decimal.Zero}

func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Amount{d}, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

func (a Amount) LessThan(b Amount) bool {
	return a.Decimal.LessThan(b.Decimal)
}

// Label renders the amount with grouped thousands, e.g. "$10,000".
func (a Amount) Label() string {
	p := message.NewPrinter(language.English)
	if a.IsInteger() {
		return p.Sprintf("$%d", a.IntPart())
	}
	return p.Sprintf("$%.2f", a.InexactFloat64())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}
