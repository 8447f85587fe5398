package processors

import (
	"math"
	"testing"
	"time"

	"github.com/username/stockwatch/backend/src/models"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func fixedPrice(price float64) PriceLookup {
	return func(symbol string) (float64, bool) {
		return price, true
	}
}

func noPrice(symbol string) (float64, bool) {
	return 0, false
}

func at(minute int) time.Time {
	return time.Date(2025, time.March, 10, 9, minute, 0, 0, time.UTC)
}

func TestComputePortfolio_BuysAndPartialSell(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Symbol: "AAA", Side: models.SideBuy, Price: 10.00, Quantity: 100, RecordedAt: at(0)},
		{ID: 2, Symbol: "AAA", Side: models.SideBuy, Price: 12.00, Quantity: 50, RecordedAt: at(1)},
		{ID: 3, Symbol: "AAA", Side: models.SideSell, Price: 15.00, Quantity: 30, RecordedAt: at(2)},
	}

	holdings := ComputePortfolio(transactions, fixedPrice(20.00))
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1", len(holdings))
	}

	h := holdings[0]
	if h.Symbol != "AAA" {
		t.Errorf("symbol = %q, want AAA", h.Symbol)
	}
	if h.Quantity != 120 {
		t.Errorf("quantity = %d, want 120", h.Quantity)
	}
	// total cost = 1000 + 600 - 450 = 1150, avg = 1150/120
	if !approxEqual(h.AvgCost, 9.58, 0.005) {
		t.Errorf("avgCost = %.4f, want 9.58", h.AvgCost)
	}
	if h.CurrentPrice == nil || *h.CurrentPrice != 20.00 {
		t.Errorf("currentPrice = %v, want 20.00", h.CurrentPrice)
	}
	if !approxEqual(h.CurrentValue, 2400.00, 0.005) {
		t.Errorf("currentValue = %.2f, want 2400.00", h.CurrentValue)
	}
	if !approxEqual(h.Profit, 1250.00, 0.005) {
		t.Errorf("profit = %.2f, want 1250.00", h.Profit)
	}
	if !approxEqual(h.ProfitRate, 108.70, 0.005) {
		t.Errorf("profitRate = %.2f, want 108.70", h.ProfitRate)
	}
}

func TestComputePortfolio_ClosedPositionOmitted(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Symbol: "BBB", Side: models.SideBuy, Price: 5.00, Quantity: 10, RecordedAt: at(0)},
		{ID: 2, Symbol: "BBB", Side: models.SideSell, Price: 8.00, Quantity: 10, RecordedAt: at(1)},
	}

	holdings := ComputePortfolio(transactions, fixedPrice(9.00))
	if len(holdings) != 0 {
		t.Fatalf("len(holdings) = %d, want 0 (closed position must be omitted)", len(holdings))
	}
}

func TestComputePortfolio_ShortPositionOmitted(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Symbol: "CCC", Side: models.SideSell, Price: 8.00, Quantity: 5, RecordedAt: at(0)},
	}

	holdings := ComputePortfolio(transactions, fixedPrice(9.00))
	if len(holdings) != 0 {
		t.Fatalf("len(holdings) = %d, want 0 (short position must be omitted)", len(holdings))
	}
}

func TestComputePortfolio_UnavailablePriceDegradesToZeroValue(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Symbol: "DDD", Side: models.SideBuy, Price: 10.00, Quantity: 10, RecordedAt: at(0)},
	}

	holdings := ComputePortfolio(transactions, noPrice)
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1", len(holdings))
	}

	h := holdings[0]
	if h.CurrentPrice != nil {
		t.Errorf("currentPrice = %v, want nil", *h.CurrentPrice)
	}
	if h.CurrentValue != 0 {
		t.Errorf("currentValue = %.2f, want 0", h.CurrentValue)
	}
	if !approxEqual(h.Profit, -100.00, 0.005) {
		t.Errorf("profit = %.2f, want -100.00", h.Profit)
	}
	if !approxEqual(h.ProfitRate, -100.00, 0.005) {
		t.Errorf("profitRate = %.2f, want -100.00", h.ProfitRate)
	}
}

func TestComputePortfolio_NonPositiveCostBasisGuardsProfitRate(t *testing.T) {
	// Sells above the buy price push the cost basis negative while
	// shares are still held; the rate must stay 0 instead of dividing.
	transactions := []models.Transaction{
		{ID: 1, Symbol: "EEE", Side: models.SideBuy, Price: 10.00, Quantity: 100, RecordedAt: at(0)},
		{ID: 2, Symbol: "EEE", Side: models.SideSell, Price: 30.00, Quantity: 50, RecordedAt: at(1)},
	}

	holdings := ComputePortfolio(transactions, fixedPrice(30.00))
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1", len(holdings))
	}

	h := holdings[0]
	// cost = 1000 - 1500 = -500
	if !approxEqual(h.AvgCost, -10.00, 0.005) {
		t.Errorf("avgCost = %.2f, want -10.00", h.AvgCost)
	}
	if h.ProfitRate != 0 {
		t.Errorf("profitRate = %.2f, want 0 for non-positive cost basis", h.ProfitRate)
	}
	if !approxEqual(h.Profit, 2000.00, 0.005) {
		t.Errorf("profit = %.2f, want 2000.00", h.Profit)
	}
}

func TestComputePortfolio_ReplaysInRecordOrderNotStorageOrder(t *testing.T) {
	// Same rows in two storage orders must yield identical holdings.
	ordered := []models.Transaction{
		{ID: 1, Symbol: "FFF", Side: models.SideBuy, Price: 10.00, Quantity: 10, RecordedAt: at(0)},
		{ID: 2, Symbol: "FFF", Side: models.SideSell, Price: 12.00, Quantity: 4, RecordedAt: at(1)},
		{ID: 3, Symbol: "FFF", Side: models.SideBuy, Price: 11.00, Quantity: 6, RecordedAt: at(2)},
	}
	shuffled := []models.Transaction{ordered[2], ordered[0], ordered[1]}

	a := ComputePortfolio(ordered, fixedPrice(13.00))
	b := ComputePortfolio(shuffled, fixedPrice(13.00))

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("len = %d/%d, want 1/1", len(a), len(b))
	}
	if a[0].Quantity != b[0].Quantity || a[0].AvgCost != b[0].AvgCost || a[0].Profit != b[0].Profit {
		t.Errorf("holdings differ by storage order: %+v vs %+v", a[0], b[0])
	}
	if a[0].Quantity != 12 {
		t.Errorf("quantity = %d, want 12", a[0].Quantity)
	}
	// cost = 100 - 48 + 66 = 118
	if !approxEqual(a[0].AvgCost, 9.83, 0.005) {
		t.Errorf("avgCost = %.2f, want 9.83", a[0].AvgCost)
	}
}

func TestComputePortfolio_MultipleSymbols(t *testing.T) {
	transactions := []models.Transaction{
		{ID: 1, Symbol: "GGG", Side: models.SideBuy, Price: 10.00, Quantity: 10, RecordedAt: at(0)},
		{ID: 2, Symbol: "HHH", Side: models.SideBuy, Price: 20.00, Quantity: 5, RecordedAt: at(1)},
		{ID: 3, Symbol: "GGG", Side: models.SideSell, Price: 10.00, Quantity: 10, RecordedAt: at(2)},
	}

	holdings := ComputePortfolio(transactions, fixedPrice(21.00))
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1 (GGG closed, HHH open)", len(holdings))
	}
	if holdings[0].Symbol != "HHH" {
		t.Errorf("symbol = %q, want HHH", holdings[0].Symbol)
	}
	if !approxEqual(holdings[0].Profit, 5.00, 0.005) {
		t.Errorf("profit = %.2f, want 5.00", holdings[0].Profit)
	}
}

func TestComputePortfolio_EmptyHistory(t *testing.T) {
	holdings := ComputePortfolio(nil, fixedPrice(10.00))
	if len(holdings) != 0 {
		t.Fatalf("len(holdings) = %d, want 0", len(holdings))
	}
}
