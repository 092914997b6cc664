package repository

import (
	"context"

	"github.com/coreledger/banking/pkg/domain"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, number string) (*accountdomain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "account_number = ?", number).Error; err != nil {
		return nil, mapGormError(err, accountdomain.ErrAccountNotFound, accountdomain.ErrAccountAlreadyExists)
	}
	return mapModelToAccount(&m)
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *accountdomain.Account) error {
	m := mapAccountToModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err, accountdomain.ErrAccountNotFound, accountdomain.ErrAccountAlreadyExists)
	}
	return nil
}

// AdjustBalance implements repository.AccountRepository. The guard in the
// WHERE clause is evaluated by the database against the current row, so two
// concurrent withdrawals can never both pass on the same funds.
func (r *accountRepository) AdjustBalance(ctx context.Context, number string, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ? AND status = ? AND balance + ? >= 0",
			number, string(accountdomain.StatusActive), delta).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return 0, domain.WrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, r.classifyRejectedAdjust(ctx, number)
	}

	var m Account
	if err := r.db.WithContext(ctx).
		Select("balance").First(&m, "account_number = ?", number).Error; err != nil {
		return 0, mapGormError(err, accountdomain.ErrAccountNotFound, accountdomain.ErrAccountAlreadyExists)
	}
	return m.Balance, nil
}

// classifyRejectedAdjust re-reads the row to tell a missing account, a
// closed account, and an insufficient balance apart after the conditional
// update matched nothing.
func (r *accountRepository) classifyRejectedAdjust(ctx context.Context, number string) error {
	var m Account
	err := r.db.WithContext(ctx).
		Select("status").First(&m, "account_number = ?", number).Error
	if err != nil {
		return mapGormError(err, accountdomain.ErrAccountNotFound, accountdomain.ErrAccountAlreadyExists)
	}
	if accountdomain.Status(m.Status) == accountdomain.StatusClosed {
		return accountdomain.ErrAccountClosed
	}
	return accountdomain.ErrInsufficientBalance
}

// UpdatePinHash implements repository.AccountRepository.
func (r *accountRepository) UpdatePinHash(ctx context.Context, number, pinHash string) error {
	return r.updateColumns(ctx, number, map[string]any{"pin_hash": pinHash})
}

// UpdateKYC implements repository.AccountRepository.
func (r *accountRepository) UpdateKYC(ctx context.Context, number string, kyc accountdomain.KYC) error {
	return r.updateColumns(ctx, number, map[string]any{
		"kyc_aadhaar":    kyc.Aadhaar,
		"kyc_pan":        kyc.PAN,
		"kyc_address":    kyc.Address,
		"kyc_updated_at": kyc.UpdatedAt,
	})
}

// UpdateStatus implements repository.AccountRepository.
func (r *accountRepository) UpdateStatus(ctx context.Context, number string, status accountdomain.Status) error {
	return r.updateColumns(ctx, number, map[string]any{"status": string(status)})
}

func (r *accountRepository) updateColumns(ctx context.Context, number string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).Updates(updates)
	if res.Error != nil {
		return domain.WrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return accountdomain.ErrAccountNotFound
	}
	return nil
}

// mapAccountToModel maps the aggregate to the GORM model.
func mapAccountToModel(a *accountdomain.Account) Account {
	m := Account{
		Number:    a.Number,
		Name:      a.Name,
		PinHash:   a.PinHash,
		Balance:   a.Balance.Paise(),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.KYC != nil {
		m.KycAadhaar = &a.KYC.Aadhaar
		m.KycPan = &a.KYC.PAN
		m.KycAddress = &a.KYC.Address
		t := a.KYC.UpdatedAt
		m.KycUpdatedAt = &t
	}
	return m
}

// mapModelToAccount hydrates the aggregate from a GORM model.
func mapModelToAccount(m *Account) (*accountdomain.Account, error) {
	b := accountdomain.New().
		WithNumber(m.Number).
		WithName(m.Name).
		WithPinHash(m.PinHash).
		WithBalance(m.Balance).
		WithStatus(accountdomain.Status(m.Status)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt)
	if m.KycAadhaar != nil || m.KycPan != nil || m.KycAddress != nil {
		kyc := &accountdomain.KYC{}
		if m.KycAadhaar != nil {
			kyc.Aadhaar = *m.KycAadhaar
		}
		if m.KycPan != nil {
			kyc.PAN = *m.KycPan
		}
		if m.KycAddress != nil {
			kyc.Address = *m.KycAddress
		}
		if m.KycUpdatedAt != nil {
			kyc.UpdatedAt = *m.KycUpdatedAt
		}
		b.WithKYC(kyc)
	}
	return b.Build()
}
