package services

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"
)

// simPriceService is the offline quote source, selected with
// QUOTE_PROVIDER=simulated. Each symbol gets a stable base price
// derived from its name and performs a small random walk around it, so
// repeated dashboard polls show plausible movement without any
// network dependency.
type simPriceService struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last map[string]float64
}

func NewSimulatedPriceService(seed int64) PriceService {
	return &simPriceService{
		rng:  rand.New(rand.NewSource(seed)),
		last: make(map[string]float64),
	}
}

func (s *simPriceService) GetPrice(ctx context.Context, symbol string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.last[symbol]
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(symbol))
		price = 10 + float64(h.Sum32()%9000)/100 // base in [10, 100)
	}

	// Step up to +-1% per poll, floored so a walk can't go non-positive.
	price = price * (1 + (s.rng.Float64()-0.5)/50)
	if price < 0.01 {
		price = 0.01
	}
	s.last[symbol] = price
	return price, true
}
