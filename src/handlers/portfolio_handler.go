package handlers

import (
	"net/http"

	"github.com/username/stockwatch/backend/src/database"
	"github.com/username/stockwatch/backend/src/logger"
	"github.com/username/stockwatch/backend/src/models"
	"github.com/username/stockwatch/backend/src/processors"
	"github.com/username/stockwatch/backend/src/services"
	"github.com/username/stockwatch/backend/src/utils"
)

type PortfolioHandler struct {
	priceService services.PriceService
}

func NewPortfolioHandler(priceService services.PriceService) *PortfolioHandler {
	return &PortfolioHandler{priceService: priceService}
}

// HandleGetPortfolio recomputes holdings from the full transaction
// history and prices them with the quote source.
func (h *PortfolioHandler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	transactions, err := models.ListTransactions(database.DB)
	if err != nil {
		ctxLogger.Error("Failed to load transactions for portfolio", "error", err)
		utils.SendJSONError(w, "Failed to compute portfolio", http.StatusInternalServerError)
		return
	}

	lookup := func(symbol string) (float64, bool) {
		return h.priceService.GetPrice(r.Context(), symbol)
	}
	holdings := processors.ComputePortfolio(transactions, lookup)

	utils.SendJSON(w, holdings, http.StatusOK)
}
