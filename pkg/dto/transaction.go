package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized view of a ledger entry.
type TransactionRead struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	ToAccount     string    `json:"to_account,omitempty"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"timestamp"`
}
