package account

import (
	"errors"
	"time"

	"github.com/coreledger/banking/pkg/money"
	"github.com/coreledger/banking/pkg/utils"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found, or the
	// supplied PIN does not match. The two cases are deliberately
	// indistinguishable.
	ErrAccountNotFound = errors.New("invalid account or PIN")

	// ErrAccountAlreadyExists is returned when the account number is taken.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountClosed is returned when a mutating operation targets a
	// closed account. Balance queries are not affected.
	ErrAccountClosed = errors.New("account is closed")

	// ErrInsufficientBalance is returned when a withdrawal or transfer would
	// take the balance below zero. The balance is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSameAccountTransfer is returned when a transfer targets its own source.
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")
)

// Status is the lifecycle state of an account. Close is a flag only;
// a closed account is never physically deleted.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// KYC is the identity-verification record attached to an account.
type KYC struct {
	Aadhaar   string
	PAN       string
	Address   string
	UpdatedAt time.Time
}

// Account is the aggregate for a single bank account.
//
// Invariants:
//   - Number uniquely identifies the account.
//   - Balance is never negative after a committed operation.
//   - The PIN is stored only as a bcrypt hash.
type Account struct {
	Number    string
	Name      string
	PinHash   string
	Balance   money.Money
	Status    Status
	KYC       *KYC
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number    string
	name      string
	pin       string
	pinHash   string
	balance   int64
	status    Status
	kyc       *KYC
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with a zero balance and active status.
func New() *Builder {
	return &Builder{
		status:    StatusActive,
		createdAt: time.Now().UTC(),
	}
}

// WithNumber sets the account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithName sets the holder name. Mandatory.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithPin sets the plain PIN; Build hashes it. Mandatory unless
// WithPinHash is used.
func (b *Builder) WithPin(pin string) *Builder {
	b.pin = pin
	return b
}

// WithPinHash sets an already-hashed PIN, for hydrating from the store.
func (b *Builder) WithPinHash(hash string) *Builder {
	b.pinHash = hash
	return b
}

// WithBalance sets the balance in paise, for hydrating from the store or
// test setup.
func (b *Builder) WithBalance(paise int64) *Builder {
	b.balance = paise
	return b
}

// WithStatus sets the lifecycle status, for hydrating from the store.
func (b *Builder) WithStatus(status Status) *Builder {
	b.status = status
	return b
}

// WithKYC attaches a KYC record.
func (b *Builder) WithKYC(kyc *KYC) *Builder {
	b.kyc = kyc
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number == "" {
		return nil, errors.New("account number is required")
	}
	if b.name == "" {
		return nil, errors.New("name is required")
	}
	hash := b.pinHash
	if hash == "" {
		if b.pin == "" {
			return nil, errors.New("pin is required")
		}
		var err error
		hash, err = utils.HashPin(b.pin)
		if err != nil {
			return nil, err
		}
	}
	return &Account{
		Number:    b.number,
		Name:      b.name,
		PinHash:   hash,
		Balance:   money.FromPaise(b.balance),
		Status:    b.status,
		KYC:       b.kyc,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// VerifyPin reports whether the plain PIN matches the stored hash.
func (a *Account) VerifyPin(pin string) bool {
	return utils.CheckPinHash(pin, a.PinHash)
}

// IsClosed reports whether the account has been flagged closed.
func (a *Account) IsClosed() bool {
	return a.Status == StatusClosed
}
