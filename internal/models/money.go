package models

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places and returns it as a
// float64 for serialization. All internal accumulation stays in decimal form;
// rounding happens only at the output boundary so errors do not compound.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// SumAmounts totals the amounts of a transaction slice without rounding.
func SumAmounts(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}
