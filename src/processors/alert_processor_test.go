package processors

import (
	"testing"

	"github.com/username/stockwatch/backend/src/models"
)

func f(v float64) *float64 { return &v }

func TestEvaluateAlert_Thresholds(t *testing.T) {
	stock := models.WatchedStock{Symbol: "AAA", HighPrice: f(10), LowPrice: f(5)}

	testCases := []struct {
		name      string
		price     float64
		available bool
		want      bool
	}{
		{"price at high threshold", 10.00, true, true},
		{"price above high threshold", 10.01, true, true},
		{"price between thresholds", 7.00, true, false},
		{"price at low threshold", 5.00, true, true},
		{"price below low threshold", 4.99, true, true},
		{"price unavailable", 10.00, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateAlert(stock, tc.price, tc.available)
			if got != tc.want {
				t.Errorf("EvaluateAlert(%v, available=%v) = %v, want %v", tc.price, tc.available, got, tc.want)
			}
		})
	}
}

func TestEvaluateAlert_OnlyHighThreshold(t *testing.T) {
	stock := models.WatchedStock{Symbol: "BBB", HighPrice: f(50)}

	if EvaluateAlert(stock, 1.00, true) {
		t.Error("low price must not alert when no low threshold is set")
	}
	if !EvaluateAlert(stock, 50.00, true) {
		t.Error("price at high threshold must alert")
	}
}

func TestEvaluateAlert_OnlyLowThreshold(t *testing.T) {
	stock := models.WatchedStock{Symbol: "CCC", LowPrice: f(20)}

	if EvaluateAlert(stock, 1000.00, true) {
		t.Error("high price must not alert when no high threshold is set")
	}
	if !EvaluateAlert(stock, 19.50, true) {
		t.Error("price below low threshold must alert")
	}
}

func TestEvaluateAlert_NoThresholdsNeverAlerts(t *testing.T) {
	stock := models.WatchedStock{Symbol: "DDD"}

	for _, price := range []float64{0.01, 100, 1e9} {
		if EvaluateAlert(stock, price, true) {
			t.Errorf("stock without thresholds alerted at price %v", price)
		}
	}
}
