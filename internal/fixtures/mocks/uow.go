// Package mocks provides in-memory test doubles for the repository and
// unit-of-work contracts. The shape follows the sample mock documented on
// the production UnitOfWork.
package mocks

import (
	"context"

	"github.com/coreledger/banking/pkg/repository"
)

// FakeUnitOfWork hands out the configured repositories. Do simply invokes
// fn with itself; set DoErr to simulate a failed transaction.
type FakeUnitOfWork struct {
	Accounts     repository.AccountRepository
	Loans        repository.LoanRepository
	Transactions repository.TransactionRepository

	DoErr       error
	AccountsErr error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	accounts := NewMemAccountRepository()
	return &FakeUnitOfWork{
		Accounts:     accounts,
		Loans:        NewMemLoanRepository(),
		Transactions: NewMemTransactionRepository(),
	}
}

func (f *FakeUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if f.DoErr != nil {
		return f.DoErr
	}
	return fn(f)
}

func (f *FakeUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	if f.AccountsErr != nil {
		return nil, f.AccountsErr
	}
	return f.Accounts, nil
}

func (f *FakeUnitOfWork) LoanRepository() (repository.LoanRepository, error) {
	return f.Loans, nil
}

func (f *FakeUnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	return f.Transactions, nil
}
