package processors

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/stockwatch/backend/src/models"
)

// PriceLookup resolves a symbol to its current price. The second
// return value is false when no price is available; the lookup must
// never fail any harder than that.
type PriceLookup func(symbol string) (float64, bool)

type position struct {
	quantity  int64
	totalCost decimal.Decimal
}

// ComputePortfolio replays the transaction history into per-symbol
// holdings. Transactions are sorted by record time (id breaks ties)
// before replay so the cost basis is deterministic regardless of
// storage order. Symbols whose net quantity is zero or negative are
// omitted: the model is long-only, a closed or short position has no
// row.
//
// An unavailable price degrades the holding (nil current price, zero
// value) rather than excluding it. The function itself never fails;
// malformed transactions are rejected at ingestion and cannot reach it.
func ComputePortfolio(transactions []models.Transaction, lookup PriceLookup) []models.Holding {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].RecordedAt.Equal(ordered[j].RecordedAt) {
			return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	positions := make(map[string]*position)
	var symbols []string // replay order, keeps the result deterministic

	for _, tx := range ordered {
		pos, ok := positions[tx.Symbol]
		if !ok {
			pos = &position{totalCost: decimal.Zero}
			positions[tx.Symbol] = pos
			symbols = append(symbols, tx.Symbol)
		}

		amount := decimal.NewFromFloat(tx.Price).Mul(decimal.NewFromInt(tx.Quantity))
		if tx.Side == models.SideBuy {
			pos.quantity += tx.Quantity
			pos.totalCost = pos.totalCost.Add(amount)
		} else {
			pos.quantity -= tx.Quantity
			pos.totalCost = pos.totalCost.Sub(amount)
		}
	}

	holdings := make([]models.Holding, 0, len(symbols))
	for _, symbol := range symbols {
		pos := positions[symbol]
		if pos.quantity <= 0 {
			continue
		}

		quantity := decimal.NewFromInt(pos.quantity)
		avgCost := pos.totalCost.Div(quantity)

		h := models.Holding{
			Symbol:   symbol,
			Quantity: pos.quantity,
			AvgCost:  avgCost.Round(2).InexactFloat64(),
		}

		currentValue := decimal.Zero
		if price, ok := lookup(symbol); ok {
			p := price
			h.CurrentPrice = &p
			currentValue = decimal.NewFromFloat(price).Mul(quantity)
		}

		profit := currentValue.Sub(pos.totalCost)
		h.CurrentValue = currentValue.Round(2).InexactFloat64()
		h.Profit = profit.Round(2).InexactFloat64()
		if pos.totalCost.IsPositive() {
			h.ProfitRate = profit.Div(pos.totalCost).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		holdings = append(holdings, h)
	}
	return holdings
}
