// Package repository defines the data access contracts the domain services
// depend on. Implementations live under infra/repository so the services
// are testable without a live database.
package repository

import (
	"context"

	"github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/domain/loan"
	"github.com/google/uuid"
)

// AccountRepository defines account data access operations.
//
// AdjustBalance is the only way a balance changes: a single conditional
// update against the current persisted value, guarded so the balance can
// never go negative. Read-modify-write of the balance is not part of the
// contract.
type AccountRepository interface {
	// Get returns the account or account.ErrAccountNotFound.
	Get(ctx context.Context, number string) (*account.Account, error)
	// Create persists a new account; account.ErrAccountAlreadyExists when
	// the number is taken.
	Create(ctx context.Context, a *account.Account) error
	// AdjustBalance applies delta (paise, may be negative) atomically and
	// returns the new balance in paise. Fails with
	// account.ErrInsufficientBalance when the guard rejects the delta,
	// account.ErrAccountClosed when the account is closed, and
	// account.ErrAccountNotFound when it does not exist.
	AdjustBalance(ctx context.Context, number string, delta int64) (int64, error)
	// UpdatePinHash replaces the stored PIN hash.
	UpdatePinHash(ctx context.Context, number string, pinHash string) error
	// UpdateKYC overwrites the KYC record.
	UpdateKYC(ctx context.Context, number string, kyc account.KYC) error
	// UpdateStatus flips the lifecycle flag.
	UpdateStatus(ctx context.Context, number string, status account.Status) error
}

// LoanRepository defines loan data access operations. Lookups are keyed by
// both the loan ID and the owning account number.
type LoanRepository interface {
	// Get returns the loan or loan.ErrLoanNotFound.
	Get(ctx context.Context, id uuid.UUID, accountNumber string) (*loan.Loan, error)
	// Create persists a newly originated loan.
	Create(ctx context.Context, l *loan.Loan) error
	// ApplyRepayment decrements remaining_due atomically, closing the loan
	// in the same statement batch when it reaches zero. Returns the new
	// remaining due in paise. Fails with loan.ErrOverRepayment when the
	// guard rejects the amount and loan.ErrLoanNotFound when no loan
	// matches.
	ApplyRepayment(ctx context.Context, id uuid.UUID, accountNumber string, amountPaise int64) (int64, error)
	// ListByAccount returns all loans owned by the account, newest first.
	ListByAccount(ctx context.Context, accountNumber string) ([]*loan.Loan, error)
}

// TransactionRepository defines ledger entry access. Entries are
// append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	ListByAccount(ctx context.Context, accountNumber string) ([]*account.Transaction, error)
}
