package repository

import (
	"context"

	"github.com/coreledger/banking/pkg/domain"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository over the provided *gorm.DB.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, tx *accountdomain.Transaction) error {
	m := Transaction{
		ID:            tx.ID,
		AccountNumber: tx.AccountNumber,
		Type:          string(tx.Type),
		Amount:        tx.Amount.Paise(),
		CreatedAt:     tx.CreatedAt,
	}
	if tx.ToAccount != "" {
		to := tx.ToAccount
		m.ToAccount = &to
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.WrapStorage(err)
	}
	return nil
}

// ListByAccount implements repository.TransactionRepository. Transfers show
// up in both the source's and the destination's history.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*accountdomain.Transaction, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("account_number = ? OR to_account = ?", accountNumber, accountNumber).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, domain.WrapStorage(err)
	}
	txs := make([]*accountdomain.Transaction, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		tx := &accountdomain.Transaction{
			ID:            m.ID,
			AccountNumber: m.AccountNumber,
			Type:          accountdomain.TransactionType(m.Type),
			Amount:        money.FromPaise(m.Amount),
			CreatedAt:     m.CreatedAt,
		}
		if m.ToAccount != nil {
			tx.ToAccount = *m.ToAccount
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
