package domain

import "github.com/shopspring/decimal"

func amountFromFloat(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}
