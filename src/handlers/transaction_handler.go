package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/stockwatch/backend/src/database"
	"github.com/username/stockwatch/backend/src/logger"
	"github.com/username/stockwatch/backend/src/models"
	"github.com/username/stockwatch/backend/src/utils"
)

type TransactionHandler struct{}

func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

type addTransactionRequest struct {
	Symbol   string  `json:"symbol"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Note     string  `json:"note"`
}

// HandleAddTransaction records a buy/sell event. Validation failures
// (bad side, non-positive price or quantity) come back as 400.
func (h *TransactionHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := models.InsertTransaction(database.DB, req.Symbol, req.Type, req.Price, req.Quantity, req.Note)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			utils.SendJSONError(w, vErr.Message, http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Failed to insert transaction", "symbol", req.Symbol, "error", err)
		utils.SendJSONError(w, "Failed to record transaction", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("Transaction recorded", "symbol", req.Symbol, "type", req.Type, "id", id)
	utils.SendJSON(w, map[string]interface{}{"success": true, "id": id}, http.StatusCreated)
}

// HandleListTransactions returns the full ledger, newest first.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	transactions, err := models.ListTransactions(database.DB)
	if err != nil {
		ctxLogger.Error("Failed to list transactions", "error", err)
		utils.SendJSONError(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}

	// ListTransactions is oldest-first for the replay; the API shows
	// the most recent entries on top.
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	utils.SendJSON(w, transactions, http.StatusOK)
}
