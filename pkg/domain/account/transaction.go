package account

import (
	"time"

	"github.com/coreledger/banking/pkg/money"
	"github.com/google/uuid"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeDeposit       TransactionType = "deposit"
	TypeWithdraw      TransactionType = "withdraw"
	TypeTransfer      TransactionType = "transfer"
	TypeLoanRepayment TransactionType = "loan_repayment"
)

// Transaction is an immutable ledger entry. It is written once by the
// service that performed the operation and never updated.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber string
	// ToAccount is set only for transfers.
	ToAccount string
	Type      TransactionType
	Amount    money.Money
	CreatedAt time.Time
}

// NewTransaction creates a ledger entry for a single-account operation.
func NewTransaction(number string, txType TransactionType, amount money.Money) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, money.ErrAmountMustBePositive
	}
	return &Transaction{
		ID:            uuid.New(),
		AccountNumber: number,
		Type:          txType,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// NewTransferTransaction creates a single ledger entry referencing both the
// source and the destination account.
func NewTransferTransaction(from, to string, amount money.Money) (*Transaction, error) {
	tx, err := NewTransaction(from, TypeTransfer, amount)
	if err != nil {
		return nil, err
	}
	tx.ToAccount = to
	return tx, nil
}
