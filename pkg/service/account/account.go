// Package account provides the business logic for account lifecycle
// operations: opening, balance queries, PIN changes, KYC updates, and
// closing. Every operation authenticates with the account number and PIN;
// a wrong PIN is reported exactly like a missing account.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coreledger/banking/pkg/cache"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/dto"
	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/repository"
	"github.com/coreledger/banking/pkg/utils"
)

// Service provides account operations over the unit of work.
type Service struct {
	uow      repository.UnitOfWork
	accCache cache.AccountCache
	logger   *slog.Logger
}

// NewService creates an account Service.
func NewService(uow repository.UnitOfWork, accCache cache.AccountCache, logger *slog.Logger) *Service {
	return &Service{uow: uow, accCache: accCache, logger: logger}
}

// Create opens a new account with a zero balance and active status.
// Returns accountdomain.ErrAccountAlreadyExists when the number is taken.
func (s *Service) Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	logger := s.logger.With("account_number", create.Number)

	builder := accountdomain.New().
		WithNumber(create.Number).
		WithName(create.Name).
		WithPin(create.Pin)
	if create.Aadhaar != "" || create.PAN != "" || create.Address != "" {
		builder = builder.WithKYC(&accountdomain.KYC{
			Aadhaar:   create.Aadhaar,
			PAN:       create.PAN,
			Address:   create.Address,
			UpdatedAt: time.Now().UTC(),
		})
	}
	a, err := builder.Build()
	if err != nil {
		logger.Error("Create failed: domain error", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, a)
	})
	if err != nil {
		if !errors.Is(err, accountdomain.ErrAccountAlreadyExists) {
			logger.Error("Create failed", "error", err)
		}
		return nil, err
	}
	logger.Info("Account created")
	return toAccountRead(a), nil
}

// GetBalance returns the balance for a matching account number and PIN.
// Balance queries work on closed accounts; close is a flag only.
func (s *Service) GetBalance(ctx context.Context, number, pin string) (*dto.BalanceRead, error) {
	if snap, ok := s.accCache.Get(ctx, number); ok {
		if !utils.CheckPinHash(pin, snap.PinHash) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return &dto.BalanceRead{
			Number:   snap.Number,
			Balance:  money.FromPaise(snap.BalancePaise).Float(),
			Currency: money.Currency,
		}, nil
	}

	a, err := s.loadAccount(ctx, number)
	if err != nil {
		return nil, err
	}
	s.accCache.Set(ctx, toSnapshot(a))
	if !a.VerifyPin(pin) {
		return nil, accountdomain.ErrAccountNotFound
	}
	return &dto.BalanceRead{
		Number:   a.Number,
		Balance:  a.Balance.Float(),
		Currency: money.Currency,
	}, nil
}

// ChangePin replaces the PIN after verifying the old one.
func (s *Service) ChangePin(ctx context.Context, number, oldPin, newPin string) error {
	logger := s.logger.With("account_number", number)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.Get(ctx, number)
		if err != nil {
			return err
		}
		if !a.VerifyPin(oldPin) {
			return accountdomain.ErrAccountNotFound
		}
		hash, err := utils.HashPin(newPin)
		if err != nil {
			return err
		}
		return repo.UpdatePinHash(ctx, number, hash)
	})
	if err != nil {
		return err
	}
	s.accCache.Delete(ctx, number)
	logger.Info("PIN updated")
	return nil
}

// UpdateKYC overwrites the KYC record and stamps it with the current time.
func (s *Service) UpdateKYC(ctx context.Context, number, pin, aadhaar, pan, address string) error {
	logger := s.logger.With("account_number", number)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.Get(ctx, number)
		if err != nil {
			return err
		}
		if !a.VerifyPin(pin) {
			return accountdomain.ErrAccountNotFound
		}
		return repo.UpdateKYC(ctx, number, accountdomain.KYC{
			Aadhaar:   aadhaar,
			PAN:       pan,
			Address:   address,
			UpdatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}
	s.accCache.Delete(ctx, number)
	logger.Info("KYC updated")
	return nil
}

// Close flags the account closed. The record is never deleted and balance
// queries keep working.
func (s *Service) Close(ctx context.Context, number, pin string) error {
	logger := s.logger.With("account_number", number)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.Get(ctx, number)
		if err != nil {
			return err
		}
		if !a.VerifyPin(pin) {
			return accountdomain.ErrAccountNotFound
		}
		return repo.UpdateStatus(ctx, number, accountdomain.StatusClosed)
	})
	if err != nil {
		return err
	}
	s.accCache.Delete(ctx, number)
	logger.Info("Account closed")
	return nil
}

func (s *Service) loadAccount(ctx context.Context, number string) (a *accountdomain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, number)
		return err
	})
	return
}

func toAccountRead(a *accountdomain.Account) *dto.AccountRead {
	read := &dto.AccountRead{
		Number:    a.Number,
		Name:      a.Name,
		Balance:   a.Balance.Float(),
		Currency:  money.Currency,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
	if a.KYC != nil {
		read.KYC = &dto.KYCRead{
			Aadhaar:   a.KYC.Aadhaar,
			PAN:       a.KYC.PAN,
			Address:   a.KYC.Address,
			UpdatedAt: a.KYC.UpdatedAt,
		}
	}
	return read
}

func toSnapshot(a *accountdomain.Account) *cache.AccountSnapshot {
	return &cache.AccountSnapshot{
		Number:       a.Number,
		Name:         a.Name,
		PinHash:      a.PinHash,
		BalancePaise: a.Balance.Paise(),
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
	}
}
