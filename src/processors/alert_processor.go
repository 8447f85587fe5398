package processors

import "github.com/username/stockwatch/backend/src/models"

// EvaluateAlert reports whether a watched stock's current price has
// crossed one of its thresholds. Comparisons are inclusive: a price
// exactly on a threshold triggers. Without a price there is no alert,
// and a stock with neither threshold set never alerts.
func EvaluateAlert(stock models.WatchedStock, price float64, priceAvailable bool) bool {
	if !priceAvailable {
		return false
	}
	if stock.HighPrice != nil && price >= *stock.HighPrice {
		return true
	}
	if stock.LowPrice != nil && price <= *stock.LowPrice {
		return true
	}
	return false
}
