package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoanRead is a read-optimized view of a loan.
type LoanRead struct {
	ID            uuid.UUID `json:"loan_id"`
	AccountNumber string    `json:"account_number"`
	LoanAmount    float64   `json:"loan_amount"`
	InterestRate  float64   `json:"interest_rate"`
	TenureMonths  int       `json:"tenure_months"`
	RemainingDue  float64   `json:"remaining_due"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// LoanApply carries the validated input for loan origination.
type LoanApply struct {
	AccountNumber string
	Pin           string
	LoanAmount    float64
	InterestRate  float64
	TenureMonths  int
}
