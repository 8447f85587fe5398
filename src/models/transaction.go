package models

import (
	"database/sql"
	"strings"
	"time"
)

// Transaction sides as stored in the transactions table.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Transaction represents a recorded buy or sell event. Rows are
// immutable once inserted; there is no correction or reversal path.
type Transaction struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Price      float64   `json:"price"`
	Quantity   int64     `json:"quantity"`
	Note       string    `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
}

// InsertTransaction records a buy/sell event and returns its id.
func InsertTransaction(db *sql.DB, symbol, side string, price float64, quantity int64, note string) (int64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, newValidationError("symbol is required")
	}
	if side != SideBuy && side != SideSell {
		return 0, newValidationError("type must be 'buy' or 'sell'")
	}
	if price <= 0 {
		return 0, newValidationError("price must be greater than zero")
	}
	if quantity <= 0 {
		return 0, newValidationError("quantity must be greater than zero")
	}

	res, err := db.Exec(
		`INSERT INTO transactions (symbol, side, price, quantity, note) VALUES (?, ?, ?, ?, ?)`,
		symbol, side, price, quantity, note,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListTransactions returns all transactions ordered oldest-first by
// record time (id breaks ties), the order the portfolio replay needs.
func ListTransactions(db *sql.DB) ([]Transaction, error) {
	rows, err := db.Query(`SELECT id, symbol, side, price, quantity, note, recorded_at FROM transactions ORDER BY recorded_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		var note sql.NullString
		if err := rows.Scan(&tx.ID, &tx.Symbol, &tx.Side, &tx.Price, &tx.Quantity, &note, &tx.RecordedAt); err != nil {
			return nil, err
		}
		tx.Note = note.String
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
