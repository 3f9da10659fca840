package services

import (
	"fmt"
	"math"
	"time"

	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

// ReconcilePositions merges a trade order into the current position set and
// returns the new set plus the signed cost of the trade for the cash stage.
// Positive cost debits cash (buy), negative cost credits it (sell).
//
// The input slice is never mutated; callers persist the returned set as one
// write so the stored row stays the single source of truth.
func ReconcilePositions(stocks []models.Stock, order schemas.StockOrder) ([]models.Stock, float64, error) {
	if err := validateOrder(order); err != nil {
		return nil, 0, err
	}

	delta := utils.To2dp(*order.Number)
	price := *order.Price
	cost := utils.To2dp(*order.Number * *order.Price)

	idx := -1
	for i, s := range stocks {
		if s.Symbol == order.Symbol {
			idx = i
			break
		}
	}

	if idx == -1 {
		// Opening trade. Selling a symbol that is not held would create a
		// short position, which this system does not support.
		if delta <= 0 {
			return nil, 0, utils.ValidationError(fmt.Sprintf("cannot sell %s: no position held", order.Symbol))
		}
		updated := make([]models.Stock, len(stocks), len(stocks)+1)
		copy(updated, stocks)
		updated = append(updated, models.Stock{
			Name:   order.Name,
			Symbol: order.Symbol,
			Number: delta,
			Price:  price,
		})
		return updated, cost, nil
	}

	newNumber := utils.To2dp(utils.To2dp(stocks[idx].Number) + delta)

	updated := make([]models.Stock, 0, len(stocks))
	for i, s := range stocks {
		if i != idx {
			updated = append(updated, s)
			continue
		}
		if newNumber > 0 {
			s.Number = newNumber
			s.Price = price
			updated = append(updated, s)
		}
		// A position at or below zero is removed, not stored. Over-selling
		// also lands here: the position goes away and the cash credit is
		// still computed from the full requested delta.
	}
	return updated, cost, nil
}

func validateOrder(order schemas.StockOrder) error {
	missing := ""
	switch {
	case order.Name == "":
		missing = "name"
	case order.Symbol == "":
		missing = "symbol"
	case order.Number == nil:
		missing = "number"
	case order.Price == nil:
		missing = "price"
	}
	if missing != "" {
		return utils.ValidationError(fmt.Sprintf("missing value/s: %s is required", missing))
	}
	if math.IsNaN(*order.Number) || math.IsInf(*order.Number, 0) ||
		math.IsNaN(*order.Price) || math.IsInf(*order.Price, 0) {
		return utils.ValidationError("stock quantity and price must be finite numbers")
	}
	if *order.Number == 0 {
		return utils.ValidationError("stock quantity must not be zero")
	}
	return nil
}

// NewTransaction builds the immutable history record for a completed trade.
// Quantity is stored as a non-negative magnitude; the buy flag carries the
// direction.
func NewTransaction(order schemas.StockOrder, now time.Time) models.Transaction {
	magnitude := math.Abs(*order.Number)
	return models.Transaction{
		Symbol:    order.Symbol,
		Price:     utils.To2dp(*order.Price),
		Quantity:  utils.To2dp(magnitude),
		Total:     utils.To2dp(magnitude * *order.Price),
		Buy:       *order.Number > 0,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
