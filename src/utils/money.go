package utils

import "github.com/shopspring/decimal"

// To2dp rounds a monetary or quantity value to two decimal places, half up
// at the cent boundary. Every value that enters or leaves the ledger goes
// through here so repeated arithmetic never accumulates float drift.
func To2dp(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
