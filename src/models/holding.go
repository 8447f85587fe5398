package models

// Holding is the computed summary of a symbol's open position. It is
// derived from the transaction history on every portfolio request and
// never persisted.
//
// CurrentPrice is nil when the quote source has no price for the
// symbol; CurrentValue is then 0, which shows up as an unrealized loss
// until a quote comes back. That mirrors the behavior users of the
// dashboard already rely on.
type Holding struct {
	Symbol       string   `json:"symbol"`
	Quantity     int64    `json:"quantity"`
	AvgCost      float64  `json:"avg_cost"`
	CurrentPrice *float64 `json:"current_price"`
	CurrentValue float64  `json:"current_value"`
	Profit       float64  `json:"profit"`
	ProfitRate   float64  `json:"profit_rate"`
}

// StockStatus is a watchlist row joined with its live quote and the
// evaluated alert flag, as rendered by GET /api/stocks.
type StockStatus struct {
	ID           int64    `json:"id"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice *float64 `json:"current_price"`
	HighPrice    *float64 `json:"high_price"`
	LowPrice     *float64 `json:"low_price"`
	Alert        bool     `json:"alert"`
}
