// Package loan provides loan origination, repayment, and listing. Repayment
// is keyed by both the loan ID and the owning account number, and the loan
// closes in the same transaction that brings its remaining due to zero.
package loan

import (
	"context"
	"log/slog"

	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	loandomain "github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/dto"
	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/repository"
	"github.com/google/uuid"
)

// Service provides loan operations over the unit of work. Loans never
// touch account balances, so there is no snapshot cache to invalidate.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a loan Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Apply originates a loan against an account. The remaining due starts at
// loan_amount * (1 + interest_rate/100). Origination does not credit the
// account balance.
func (s *Service) Apply(ctx context.Context, apply dto.LoanApply) (uuid.UUID, error) {
	principal, err := money.NewPositive(apply.LoanAmount)
	if err != nil {
		return uuid.Nil, err
	}
	logger := s.logger.With("account_number", apply.AccountNumber)

	var loanID uuid.UUID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, apply.AccountNumber)
		if err != nil {
			return err
		}
		if !a.VerifyPin(apply.Pin) {
			return accountdomain.ErrAccountNotFound
		}
		if a.IsClosed() {
			return accountdomain.ErrAccountClosed
		}
		l, err := loandomain.New(apply.AccountNumber, principal, apply.InterestRate, apply.TenureMonths)
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if err := loans.Create(ctx, l); err != nil {
			return err
		}
		loanID = l.ID
		return nil
	})
	if err != nil {
		logger.Error("Loan application failed", "error", err)
		return uuid.Nil, err
	}
	logger.Info("Loan applied", "loan_id", loanID, "amount", principal.Float())
	return loanID, nil
}

// Repay decrements the remaining due and appends a loan_repayment ledger
// entry. Over-repayment leaves the due unchanged. Repayment is allowed on a
// closed account; debt does not stop existing when the account does.
func (s *Service) Repay(ctx context.Context, number string, loanID uuid.UUID, pin string, amount float64) (float64, error) {
	m, err := money.NewPositive(amount)
	if err != nil {
		return 0, err
	}
	logger := s.logger.With("account_number", number, "loan_id", loanID)

	var remaining int64
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, number)
		if err != nil {
			return err
		}
		if !a.VerifyPin(pin) {
			return accountdomain.ErrAccountNotFound
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		l, err := loans.Get(ctx, loanID, number)
		if err != nil {
			return err
		}
		// Domain-level check first; the conditional update below is the
		// authoritative guard under concurrency.
		if err := l.Repay(m); err != nil {
			return err
		}
		remaining, err = loans.ApplyRepayment(ctx, loanID, number, m.Paise())
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := accountdomain.NewTransaction(number, accountdomain.TypeLoanRepayment, m)
		if err != nil {
			return err
		}
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		logger.Error("Loan repayment failed", "error", err)
		return 0, err
	}
	logger.Info("Loan repayment successful", "remaining_due", money.FromPaise(remaining).Float())
	return money.FromPaise(remaining).Float(), nil
}

// List returns all loans for the account, after verifying the PIN.
func (s *Service) List(ctx context.Context, number, pin string) ([]*dto.LoanRead, error) {
	var out []*dto.LoanRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, number)
		if err != nil {
			return err
		}
		if !a.VerifyPin(pin) {
			return accountdomain.ErrAccountNotFound
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		list, err := loans.ListByAccount(ctx, number)
		if err != nil {
			return err
		}
		out = make([]*dto.LoanRead, 0, len(list))
		for _, l := range list {
			out = append(out, toLoanRead(l))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toLoanRead(l *loandomain.Loan) *dto.LoanRead {
	return &dto.LoanRead{
		ID:            l.ID,
		AccountNumber: l.AccountNumber,
		LoanAmount:    l.Principal.Float(),
		InterestRate:  l.InterestRate,
		TenureMonths:  l.TenureMonths,
		RemainingDue:  l.RemainingDue.Float(),
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
	}
}
