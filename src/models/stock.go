package models

import (
	"database/sql"
	"strings"
	"time"
)

// WatchedStock represents a row in the stocks table: a ticker under
// watch with optional high/low alert thresholds.
type WatchedStock struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	HighPrice *float64  `json:"high_price"`
	LowPrice  *float64  `json:"low_price"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertStock adds a symbol to the watchlist and returns its id.
// The symbol is stored upper-cased and must be non-empty and unique.
func InsertStock(db *sql.DB, symbol, name string, highPrice, lowPrice *float64) (int64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, newValidationError("symbol is required")
	}

	res, err := db.Exec(
		`INSERT INTO stocks (symbol, name, high_price, low_price) VALUES (?, ?, ?, ?)`,
		symbol, name, highPrice, lowPrice,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// StockSymbolExists reports whether a symbol is already on the watchlist.
func StockSymbolExists(db *sql.DB, symbol string) (bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM stocks WHERE symbol = ?`, symbol).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStocks returns the watchlist in creation order.
func ListStocks(db *sql.DB) ([]WatchedStock, error) {
	rows, err := db.Query(`SELECT id, symbol, name, high_price, low_price, created_at FROM stocks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []WatchedStock
	for rows.Next() {
		var s WatchedStock
		var name sql.NullString
		if err := rows.Scan(&s.ID, &s.Symbol, &name, &s.HighPrice, &s.LowPrice, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Name = name.String
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

// DeleteStock removes a stock by id. Deleting an unknown id is a no-op
// success, so the operation is idempotent.
func DeleteStock(db *sql.DB, id int64) error {
	_, err := db.Exec(`DELETE FROM stocks WHERE id = ?`, id)
	return err
}
