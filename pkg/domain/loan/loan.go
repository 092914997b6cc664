// Package loan holds the loan aggregate and its lifecycle rules.
package loan

import (
	"errors"
	"math"
	"time"

	"github.com/coreledger/banking/pkg/money"
	"github.com/google/uuid"
)

var (
	// ErrLoanNotFound is returned when no loan matches both the loan ID and
	// the owning account number.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrOverRepayment is returned when a repayment exceeds the remaining
	// due. The due is left unchanged.
	ErrOverRepayment = errors.New("repayment amount exceeds remaining due")
)

// Status is the lifecycle state of a loan. A loan closes exactly when its
// remaining due reaches zero and never reopens.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Loan is the aggregate for a single loan against an account.
//
// Invariants:
//   - RemainingDue starts at Principal * (1 + InterestRate/100).
//   - RemainingDue is monotonically non-increasing.
//   - Status is closed exactly when RemainingDue is zero.
type Loan struct {
	ID            uuid.UUID
	AccountNumber string
	Principal     money.Money
	InterestRate  float64
	TenureMonths  int
	RemainingDue  money.Money
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New originates a loan. The remaining due is the principal plus simple
// interest over the whole tenure, matching the ledger's origination rule.
func New(accountNumber string, principal money.Money, interestRate float64, tenureMonths int) (*Loan, error) {
	if accountNumber == "" {
		return nil, errors.New("account number is required")
	}
	if !principal.IsPositive() {
		return nil, money.ErrAmountMustBePositive
	}
	if interestRate < 0 || math.IsNaN(interestRate) || math.IsInf(interestRate, 0) {
		return nil, errors.New("interest rate must be non-negative")
	}
	if tenureMonths <= 0 {
		return nil, errors.New("tenure must be at least one month")
	}
	due := int64(math.Round(float64(principal.Paise()) * (1 + interestRate/100)))
	return &Loan{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Principal:     principal,
		InterestRate:  interestRate,
		TenureMonths:  tenureMonths,
		RemainingDue:  money.FromPaise(due),
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// FromData hydrates a Loan from the store.
func FromData(
	id uuid.UUID,
	accountNumber string,
	principal money.Money,
	interestRate float64,
	tenureMonths int,
	remainingDue money.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Loan {
	return &Loan{
		ID:            id,
		AccountNumber: accountNumber,
		Principal:     principal,
		InterestRate:  interestRate,
		TenureMonths:  tenureMonths,
		RemainingDue:  remainingDue,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// Repay decrements the remaining due. It returns ErrOverRepayment when the
// amount exceeds the remaining due, so a fully repaid loan rejects any
// further positive repayment.
func (l *Loan) Repay(amount money.Money) error {
	if !amount.IsPositive() {
		return money.ErrAmountMustBePositive
	}
	if amount.GreaterThan(l.RemainingDue) {
		return ErrOverRepayment
	}
	due, err := l.RemainingDue.Subtract(amount)
	if err != nil {
		return err
	}
	l.RemainingDue = due
	if l.RemainingDue.IsZero() {
		l.Status = StatusClosed
	}
	return nil
}
