// Package transaction provides the balance-mutating operations: deposit,
// withdraw, and transfer. Every mutation is a single conditional update
// against the persisted balance, and each one appends an immutable ledger
// entry inside the same transaction boundary.
package transaction

import (
	"context"
	"log/slog"

	"github.com/coreledger/banking/pkg/cache"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/dto"
	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/repository"
)

// Service provides deposit, withdraw, and transfer over the unit of work.
type Service struct {
	uow      repository.UnitOfWork
	accCache cache.AccountCache
	logger   *slog.Logger
}

// NewService creates a transaction Service.
func NewService(uow repository.UnitOfWork, accCache cache.AccountCache, logger *slog.Logger) *Service {
	return &Service{uow: uow, accCache: accCache, logger: logger}
}

// Deposit adds funds and appends a deposit ledger entry. The amount must be
// strictly positive.
func (s *Service) Deposit(ctx context.Context, number, pin string, amount float64) (*dto.BalanceRead, error) {
	m, err := money.NewPositive(amount)
	if err != nil {
		return nil, err
	}
	newBalance, err := s.adjust(ctx, number, pin, m.Paise(), accountdomain.TypeDeposit, m)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Deposit successful", "account_number", number, "amount", m.Float())
	return &dto.BalanceRead{
		Number:   number,
		Balance:  money.FromPaise(newBalance).Float(),
		Currency: money.Currency,
	}, nil
}

// Withdraw removes funds and appends a withdraw ledger entry. Fails with
// accountdomain.ErrInsufficientBalance when the balance would go negative;
// in that case the balance is unchanged.
func (s *Service) Withdraw(ctx context.Context, number, pin string, amount float64) (*dto.BalanceRead, error) {
	m, err := money.NewPositive(amount)
	if err != nil {
		return nil, err
	}
	newBalance, err := s.adjust(ctx, number, pin, -m.Paise(), accountdomain.TypeWithdraw, m)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Withdrawal successful", "account_number", number, "amount", m.Float())
	return &dto.BalanceRead{
		Number:   number,
		Balance:  money.FromPaise(newBalance).Float(),
		Currency: money.Currency,
	}, nil
}

// Transfer debits the source, credits the destination, and appends one
// transfer ledger entry referencing both accounts. All three writes commit
// together or not at all. The PIN is validated against the source only.
func (s *Service) Transfer(ctx context.Context, from, pin, to string, amount float64) error {
	if from == to {
		return accountdomain.ErrSameAccountTransfer
	}
	m, err := money.NewPositive(amount)
	if err != nil {
		return err
	}
	logger := s.logger.With("from_account", from, "to_account", to)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		src, err := accounts.Get(ctx, from)
		if err != nil {
			return err
		}
		if !src.VerifyPin(pin) {
			return accountdomain.ErrAccountNotFound
		}
		dst, err := accounts.Get(ctx, to)
		if err != nil {
			return err
		}
		if src.IsClosed() || dst.IsClosed() {
			return accountdomain.ErrAccountClosed
		}
		if _, err = accounts.AdjustBalance(ctx, from, -m.Paise()); err != nil {
			return err
		}
		if _, err = accounts.AdjustBalance(ctx, to, m.Paise()); err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := accountdomain.NewTransferTransaction(from, to, m)
		if err != nil {
			return err
		}
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return err
	}
	s.accCache.Delete(ctx, from)
	s.accCache.Delete(ctx, to)
	logger.Info("Transfer successful", "amount", m.Float())
	return nil
}

// History lists the ledger entries touching the account, after verifying
// the PIN. Ledger entries are read-only.
func (s *Service) History(ctx context.Context, number, pin string) ([]*dto.TransactionRead, error) {
	var entries []*accountdomain.Transaction
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
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entries, err = ledger.ListByAccount(ctx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionRead, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.TransactionRead{
			ID:            e.ID,
			AccountNumber: e.AccountNumber,
			ToAccount:     e.ToAccount,
			Type:          string(e.Type),
			Amount:        e.Amount.Float(),
			Currency:      money.Currency,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out, nil
}

// adjust authenticates, applies the conditional balance update, and appends
// the ledger entry, all inside one transaction boundary.
func (s *Service) adjust(
	ctx context.Context,
	number, pin string,
	delta int64,
	txType accountdomain.TransactionType,
	amount money.Money,
) (newBalance int64, err error) {
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
		if a.IsClosed() {
			return accountdomain.ErrAccountClosed
		}
		newBalance, err = accounts.AdjustBalance(ctx, number, delta)
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := accountdomain.NewTransaction(number, txType, amount)
		if err != nil {
			return err
		}
		return ledger.Create(ctx, entry)
	})
	if err != nil {
		return 0, err
	}
	s.accCache.Delete(ctx, number)
	return newBalance, nil
}
