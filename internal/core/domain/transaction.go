package domain

import (
	"errors"
	"time"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction records a single ledger movement. Amount carries the magnitude
// only; the direction comes from Type. Type is copied from the create request
// and is never re-derived from the referenced category, so the two may
// diverge after a later category edit.
type Transaction struct {
	ID          string       `json:"id"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Date        string       `json:"date"` // ISO-8601 calendar date, no timezone
	CategoryID  string       `json:"category_id"`
	Type        CategoryType `json:"type"`
	UserID      string       `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
}
