package repository

import (
	"time"

	"github.com/google/uuid"
)

// Account is the accounts table record. The account number is the natural
// primary key; the PIN is stored only as a bcrypt hash.
type Account struct {
	Number       string `gorm:"column:account_number;primaryKey;size:32"`
	Name         string `gorm:"not null;size:100"`
	PinHash      string `gorm:"column:pin_hash;not null;size:72"`
	Balance      int64  `gorm:"not null;default:0"`
	Status       string `gorm:"not null;default:'active';size:16"`
	KycAadhaar   *string
	KycPan       *string
	KycAddress   *string
	KycUpdatedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default pluralization of "account_number" keyed models.
func (Account) TableName() string { return "accounts" }

// Loan is the loans table record.
type Loan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index;size:32"`
	LoanAmount    int64     `gorm:"not null"`
	InterestRate  float64   `gorm:"not null"`
	TenureMonths  int       `gorm:"not null"`
	RemainingDue  int64     `gorm:"not null"`
	Status        string    `gorm:"not null;default:'active';size:16"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Loan) TableName() string { return "loans" }

// Transaction is the append-only ledger table record. Rows are never
// updated or deleted.
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index;size:32"`
	ToAccount     *string   `gorm:"size:32"`
	Type          string    `gorm:"not null;size:16"`
	Amount        int64     `gorm:"not null"`
	CreatedAt     time.Time
}

func (Transaction) TableName() string { return "transactions" }

// Models lists every persisted model for migration.
func Models() []any {
	return []any{&Account{}, &Loan{}, &Transaction{}}
}
