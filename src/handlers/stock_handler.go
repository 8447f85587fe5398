package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/stockwatch/backend/src/database"
	"github.com/username/stockwatch/backend/src/logger"
	"github.com/username/stockwatch/backend/src/models"
	"github.com/username/stockwatch/backend/src/processors"
	"github.com/username/stockwatch/backend/src/services"
	"github.com/username/stockwatch/backend/src/utils"
)

type StockHandler struct {
	priceService services.PriceService
}

func NewStockHandler(priceService services.PriceService) *StockHandler {
	return &StockHandler{priceService: priceService}
}

type addStockRequest struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	HighPrice *float64 `json:"high_price"`
	LowPrice  *float64 `json:"low_price"`
}

// HandleAddStock registers a symbol on the watchlist. Duplicate
// symbols are rejected; the thresholds are optional.
func (h *StockHandler) HandleAddStock(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	exists, err := models.StockSymbolExists(database.DB, req.Symbol)
	if err != nil {
		ctxLogger.Error("Failed to check for duplicate symbol", "symbol", req.Symbol, "error", err)
		utils.SendJSONError(w, "Failed to add stock", http.StatusInternalServerError)
		return
	}
	if exists {
		utils.SendJSONError(w, "Symbol is already on the watchlist", http.StatusConflict)
		return
	}

	id, err := models.InsertStock(database.DB, req.Symbol, req.Name, req.HighPrice, req.LowPrice)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			utils.SendJSONError(w, vErr.Message, http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Failed to insert stock", "symbol", req.Symbol, "error", err)
		utils.SendJSONError(w, "Failed to add stock", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("Stock added to watchlist", "symbol", req.Symbol, "id", id)
	utils.SendJSON(w, map[string]interface{}{"success": true, "id": id}, http.StatusCreated)
}

// HandleListStocks returns the watchlist joined with live quotes and
// the evaluated alert flag for each stock.
func (h *StockHandler) HandleListStocks(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	stocks, err := models.ListStocks(database.DB)
	if err != nil {
		ctxLogger.Error("Failed to list stocks", "error", err)
		utils.SendJSONError(w, "Failed to retrieve stocks", http.StatusInternalServerError)
		return
	}

	statuses := make([]models.StockStatus, 0, len(stocks))
	for _, stock := range stocks {
		status := models.StockStatus{
			ID:        stock.ID,
			Symbol:    stock.Symbol,
			Name:      stock.Name,
			HighPrice: stock.HighPrice,
			LowPrice:  stock.LowPrice,
		}
		price, available := h.priceService.GetPrice(r.Context(), stock.Symbol)
		if available {
			p := price
			status.CurrentPrice = &p
		}
		status.Alert = processors.EvaluateAlert(stock, price, available)
		statuses = append(statuses, status)
	}

	utils.SendJSON(w, statuses, http.StatusOK)
}

// HandleDeleteStock removes a stock by id. Unknown ids still succeed,
// so retries and double-clicks are harmless.
func (h *StockHandler) HandleDeleteStock(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid stock id", http.StatusBadRequest)
		return
	}

	if err := models.DeleteStock(database.DB, id); err != nil {
		ctxLogger.Error("Failed to delete stock", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete stock", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("Stock deleted", "id", id)
	utils.SendJSON(w, map[string]interface{}{"success": true}, http.StatusOK)
}
