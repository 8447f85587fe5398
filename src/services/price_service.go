package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/username/stockwatch/backend/src/config"
	"github.com/username/stockwatch/backend/src/logger"
)

const (
	quoteUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	quoteReferer   = "https://quote.eastmoney.com/"
)

// eastmoneyQuoteResponse is the subset of the push2 stock/get payload
// we read. f43 is the latest price, f58 a fallback price field.
type eastmoneyQuoteResponse struct {
	Rc   int `json:"rc"`
	Data *struct {
		F43 *float64 `json:"f43"`
		F58 *float64 `json:"f58"`
	} `json:"data"`
}

type priceServiceImpl struct {
	client *resty.Client
	cache  *cache.Cache
}

// NewPriceService builds the live quote source against the EastMoney
// push2 API. Quotes are cached for cfg.QuoteCacheTTL so the dashboard's
// polling doesn't turn into one upstream call per stock per poll.
func NewPriceService(cfg *config.AppConfig, quoteCache *cache.Cache) PriceService {
	client := resty.New().
		SetBaseURL(cfg.QuoteAPIBaseURL).
		SetTimeout(cfg.QuoteAPITimeout).
		SetHeader("User-Agent", quoteUserAgent).
		SetHeader("Referer", quoteReferer)

	return &priceServiceImpl{
		client: client,
		cache:  quoteCache,
	}
}

// secidForSymbol maps an exchange ticker to EastMoney's market-prefixed
// security id: Shanghai symbols start with 6, Shenzhen with 0 or 3.
func secidForSymbol(symbol string) (string, bool) {
	switch {
	case strings.HasPrefix(symbol, "6"):
		return "1." + symbol, true
	case strings.HasPrefix(symbol, "0"), strings.HasPrefix(symbol, "3"):
		return "0." + symbol, true
	default:
		return "", false
	}
}

func (s *priceServiceImpl) GetPrice(ctx context.Context, symbol string) (float64, bool) {
	if cached, found := s.cache.Get(symbol); found {
		return cached.(float64), true
	}

	secid, ok := secidForSymbol(symbol)
	if !ok {
		logger.FromContext(ctx).Debug("No quote market for symbol", "symbol", symbol)
		return 0, false
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"secid":  secid,
			"fields": "f43,f58",
		}).
		Get("/api/qt/stock/get")
	if err != nil {
		logger.FromContext(ctx).Warn("Quote request failed", "symbol", symbol, "error", err)
		return 0, false
	}
	if resp.StatusCode() != http.StatusOK {
		logger.FromContext(ctx).Warn("Quote API returned non-OK status", "symbol", symbol, "status", resp.StatusCode())
		return 0, false
	}

	var quote eastmoneyQuoteResponse
	if err := json.Unmarshal(resp.Body(), &quote); err != nil {
		logger.FromContext(ctx).Warn("Failed to decode quote response", "symbol", symbol, "error", err)
		return 0, false
	}
	price, err := quote.price()
	if err != nil {
		logger.FromContext(ctx).Warn("Quote response carried no price", "symbol", symbol, "error", err)
		return 0, false
	}

	s.cache.SetDefault(symbol, price)
	return price, true
}

func (r eastmoneyQuoteResponse) price() (float64, error) {
	if r.Rc != 0 || r.Data == nil {
		return 0, fmt.Errorf("quote API rc=%d with empty data", r.Rc)
	}
	if r.Data.F43 != nil {
		return *r.Data.F43, nil
	}
	if r.Data.F58 != nil {
		return *r.Data.F58, nil
	}
	return 0, fmt.Errorf("price fields f43/f58 both empty")
}
