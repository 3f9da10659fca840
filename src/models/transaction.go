package models

// Transaction is an immutable record of one completed trade. Quantity is
// always the non-negative magnitude; Buy carries the direction. Records are
// appended to a user's history in insertion order and never mutated.
type Transaction struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"total"`
	Buy       bool    `json:"buy"`
	Timestamp string  `json:"timeStamp"`
}
