package repository

import "context"

// UnitOfWork is the transaction boundary for the ledger store. All
// repositories obtained inside Do share one database transaction, so a
// transfer's debit, credit, and ledger append commit together or not at
// all.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed
	// to fn hands out repositories bound to that transaction. If fn
	// returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	LoanRepository() (LoanRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
