package repository

import (
	"context"

	"github.com/coreledger/banking/pkg/domain"
	loandomain "github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository over the provided *gorm.DB.
func NewLoanRepository(db *gorm.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

// Get implements repository.LoanRepository. The lookup is keyed by both the
// loan ID and the owning account number so one account can never read
// another account's loan.
func (r *loanRepository) Get(ctx context.Context, id uuid.UUID, accountNumber string) (*loandomain.Loan, error) {
	var m Loan
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND account_number = ?", id, accountNumber).Error
	if err != nil {
		return nil, mapGormError(err, loandomain.ErrLoanNotFound, domain.ErrAlreadyExists)
	}
	return mapModelToLoan(&m), nil
}

// Create implements repository.LoanRepository.
func (r *loanRepository) Create(ctx context.Context, l *loandomain.Loan) error {
	m := mapLoanToModel(l)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err, loandomain.ErrLoanNotFound, domain.ErrAlreadyExists)
	}
	return nil
}

// ApplyRepayment implements repository.LoanRepository. The remaining due is
// decremented conditionally so concurrent repayments cannot push it below
// zero; the loan flips to closed in the same transaction when it hits zero.
func (r *loanRepository) ApplyRepayment(ctx context.Context, id uuid.UUID, accountNumber string, amountPaise int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Loan{}).
		Where("id = ? AND account_number = ? AND status = ? AND remaining_due >= ?",
			id, accountNumber, string(loandomain.StatusActive), amountPaise).
		Update("remaining_due", gorm.Expr("remaining_due - ?", amountPaise))
	if res.Error != nil {
		return 0, domain.WrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, r.classifyRejectedRepayment(ctx, id, accountNumber)
	}

	var m Loan
	err := r.db.WithContext(ctx).
		Select("remaining_due").First(&m, "id = ? AND account_number = ?", id, accountNumber).Error
	if err != nil {
		return 0, mapGormError(err, loandomain.ErrLoanNotFound, domain.ErrAlreadyExists)
	}
	if m.RemainingDue == 0 {
		err = r.db.WithContext(ctx).Model(&Loan{}).
			Where("id = ? AND status = ?", id, string(loandomain.StatusActive)).
			Update("status", string(loandomain.StatusClosed)).Error
		if err != nil {
			return 0, domain.WrapStorage(err)
		}
	}
	return m.RemainingDue, nil
}

// classifyRejectedRepayment re-reads the row to tell a missing loan from a
// rejected amount. A closed loan has zero due, so any positive repayment
// against it is an over-repayment.
func (r *loanRepository) classifyRejectedRepayment(ctx context.Context, id uuid.UUID, accountNumber string) error {
	var m Loan
	err := r.db.WithContext(ctx).
		Select("id").First(&m, "id = ? AND account_number = ?", id, accountNumber).Error
	if err != nil {
		return mapGormError(err, loandomain.ErrLoanNotFound, domain.ErrAlreadyExists)
	}
	return loandomain.ErrOverRepayment
}

// ListByAccount implements repository.LoanRepository.
func (r *loanRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*loandomain.Loan, error) {
	var ms []Loan
	err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, domain.WrapStorage(err)
	}
	loans := make([]*loandomain.Loan, 0, len(ms))
	for i := range ms {
		loans = append(loans, mapModelToLoan(&ms[i]))
	}
	return loans, nil
}

func mapLoanToModel(l *loandomain.Loan) Loan {
	return Loan{
		ID:            l.ID,
		AccountNumber: l.AccountNumber,
		LoanAmount:    l.Principal.Paise(),
		InterestRate:  l.InterestRate,
		TenureMonths:  l.TenureMonths,
		RemainingDue:  l.RemainingDue.Paise(),
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func mapModelToLoan(m *Loan) *loandomain.Loan {
	return loandomain.FromData(
		m.ID,
		m.AccountNumber,
		money.FromPaise(m.LoanAmount),
		m.InterestRate,
		m.TenureMonths,
		money.FromPaise(m.RemainingDue),
		loandomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
