package models

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits every stored amount is rounded to.
const MoneyPlaces = 2

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds an amount to MoneyPlaces, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
