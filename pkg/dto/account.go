package dto

import (
	"time"
)

// AccountRead is a read-optimized view of an account for queries and API
// responses. The PIN hash never leaves the service layer.
type AccountRead struct {
	Number    string    `json:"account_number"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	KYC       *KYCRead  `json:"kyc,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// KYCRead is the API view of an account's KYC record.
type KYCRead struct {
	Aadhaar   string    `json:"aadhaar"`
	PAN       string    `json:"pan"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BalanceRead is the response body of a balance query.
type BalanceRead struct {
	Number   string  `json:"account_number"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// AccountCreate carries the validated input for opening an account.
type AccountCreate struct {
	Number  string
	Name    string
	Pin     string
	Aadhaar string
	PAN     string
	Address string
}
