package models

// Stock is one position in an account: a held quantity of a symbol at the
// last trade price. A position with quantity <= 0 is never stored; the
// reconciler removes it from the set instead.
type Stock struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Number float64 `json:"number"`
	Price  float64 `json:"price"`
}
