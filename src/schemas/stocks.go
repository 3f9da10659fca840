package schemas

// StockOrder is a buy/sell instruction. Number is a signed quantity delta:
// positive buys, negative sells. Pointer fields distinguish absent from
// zero so validation can name what is missing.
type StockOrder struct {
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
	Number *float64 `json:"number"`
	Price  *float64 `json:"price"`
}

type AddStockRequest struct {
	AddStock StockOrder `json:"addStock"`
}

type TradeResponse struct {
	User UserState `json:"user"`
}
