package services

import "github.com/shopspring/decimal"

// LineTotal is price × quantity rounded to the cent.
func LineTotal(price float64, qty int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		InexactFloat64()
}
