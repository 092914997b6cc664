package repository

import (
	"context"
	"errors"

	"github.com/coreledger/banking/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the running
// transaction, so every operation in fn commits or rolls back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// ErrNoTransaction is returned when a repository accessor is called outside
// a Do boundary.
var ErrNoTransaction = errors.New("repository requested outside a transaction")

// Do runs fn inside a database transaction, providing a UoW whose
// repositories share that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return NewAccountRepository(u.tx), nil
}

// LoanRepository implements repository.UnitOfWork.
func (u *UoW) LoanRepository() (repository.LoanRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return NewLoanRepository(u.tx), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return NewTransactionRepository(u.tx), nil
}
