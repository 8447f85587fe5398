package services

import "context"

// PriceService resolves ticker symbols to current prices.
//
// GetPrice never returns an error: network failures, malformed
// responses and unknown symbols all surface as available=false. At
// most one upstream attempt is made per call.
type PriceService interface {
	GetPrice(ctx context.Context, symbol string) (price float64, available bool)
}
