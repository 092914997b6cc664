package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/money"
	"github.com/google/uuid"
)

// MemAccountRepository is a map-backed AccountRepository enforcing the same
// guards as the SQL implementation.
type MemAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*account.Account
}

func NewMemAccountRepository() *MemAccountRepository {
	return &MemAccountRepository{accounts: make(map[string]*account.Account)}
}

func (r *MemAccountRepository) Get(ctx context.Context, number string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *MemAccountRepository) Create(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Number]; ok {
		return account.ErrAccountAlreadyExists
	}
	cp := *a
	r.accounts[a.Number] = &cp
	return nil
}

func (r *MemAccountRepository) AdjustBalance(ctx context.Context, number string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return 0, account.ErrAccountNotFound
	}
	if a.IsClosed() {
		return 0, account.ErrAccountClosed
	}
	next := a.Balance.Paise() + delta
	if next < 0 {
		return 0, account.ErrInsufficientBalance
	}
	a.Balance = money.FromPaise(next)
	a.UpdatedAt = time.Now().UTC()
	return next, nil
}

func (r *MemAccountRepository) UpdatePinHash(ctx context.Context, number, pinHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.PinHash = pinHash
	return nil
}

func (r *MemAccountRepository) UpdateKYC(ctx context.Context, number string, kyc account.KYC) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return account.ErrAccountNotFound
	}
	cp := kyc
	a.KYC = &cp
	return nil
}

func (r *MemAccountRepository) UpdateStatus(ctx context.Context, number string, status account.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Status = status
	return nil
}

// MemLoanRepository is a map-backed LoanRepository.
type MemLoanRepository struct {
	mu    sync.Mutex
	loans map[uuid.UUID]*loan.Loan
}

func NewMemLoanRepository() *MemLoanRepository {
	return &MemLoanRepository{loans: make(map[uuid.UUID]*loan.Loan)}
}

func (r *MemLoanRepository) Get(ctx context.Context, id uuid.UUID, accountNumber string) (*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.AccountNumber != accountNumber {
		return nil, loan.ErrLoanNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *MemLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *MemLoanRepository) ApplyRepayment(ctx context.Context, id uuid.UUID, accountNumber string, amountPaise int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.AccountNumber != accountNumber {
		return 0, loan.ErrLoanNotFound
	}
	if amountPaise > l.RemainingDue.Paise() {
		return 0, loan.ErrOverRepayment
	}
	next := l.RemainingDue.Paise() - amountPaise
	l.RemainingDue = money.FromPaise(next)
	if next == 0 {
		l.Status = loan.StatusClosed
	}
	l.UpdatedAt = time.Now().UTC()
	return next, nil
}

func (r *MemLoanRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*loan.Loan
	for _, l := range r.loans {
		if l.AccountNumber == accountNumber {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MemTransactionRepository is an append-only slice of ledger entries.
type MemTransactionRepository struct {
	mu      sync.Mutex
	entries []*account.Transaction
}

func NewMemTransactionRepository() *MemTransactionRepository {
	return &MemTransactionRepository{}
}

func (r *MemTransactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *MemTransactionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*account.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*account.Transaction
	for _, tx := range r.entries {
		if tx.AccountNumber == accountNumber || tx.ToAccount == accountNumber {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

// All returns every recorded ledger entry, for assertions.
func (r *MemTransactionRepository) All() []*account.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*account.Transaction, len(r.entries))
	copy(out, r.entries)
	return out
}
