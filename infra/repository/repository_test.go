package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	accountdomain "github.com/coreledger/banking/pkg/domain/account"
	loandomain "github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/money"
	pkgrepo "github.com/coreledger/banking/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens GORM over sqlmock with the same session settings the real
// connection uses.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_Get(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	now := time.Now().UTC()
	pan := "ABCDE1234F"
	rows := sqlmock.NewRows([]string{
		"account_number", "name", "pin_hash", "balance", "status",
		"kyc_aadhaar", "kyc_pan", "kyc_address", "kyc_updated_at",
		"created_at", "updated_at",
	}).AddRow("A1", "Asha", "$2a$14$hash", int64(12345), "active",
		nil, pan, nil, nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE account_number = \$1`).
		WithArgs("A1", 1).
		WillReturnRows(rows)

	a, err := repo.Get(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", a.Number)
	assert.Equal(t, int64(12345), a.Balance.Paise())
	require.NotNil(t, a.KYC)
	assert.Equal(t, pan, a.KYC.PAN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Get_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"account_number"}))

	_, err := repo.Get(context.Background(), "ZZ")
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestAccountRepository_Create_Duplicate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	mock.ExpectExec(`INSERT INTO "accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	a, err := accountdomain.New().WithNumber("A1").WithName("Asha").WithPin("1234").Build()
	require.NoError(t, err)
	err = repo.Create(context.Background(), a)
	assert.ErrorIs(t, err, accountdomain.ErrAccountAlreadyExists)
}

func TestAccountRepository_AdjustBalance(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "balance" FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(7500)))

	balance, err := repo.AdjustBalance(context.Background(), "A1", -2500)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_AdjustBalance_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		status any
		want   error
	}{
		{"insufficient balance", "active", accountdomain.ErrInsufficientBalance},
		{"closed account", "closed", accountdomain.ErrAccountClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := accountRepository{db: db}

			mock.ExpectExec(`UPDATE "accounts" SET`).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(`SELECT "status" FROM "accounts"`).
				WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(tc.status))

			_, err := repo.AdjustBalance(context.Background(), "A1", -2500)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAccountRepository_AdjustBalance_MissingAccount(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "status" FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	_, err := repo.AdjustBalance(context.Background(), "ZZ", 100)
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestAccountRepository_UpdatePinHash_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := accountRepository{db: db}

	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePinHash(context.Background(), "ZZ", "$2a$14$hash")
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestLoanRepository_Get_KeyedByLoanAndAccount(t *testing.T) {
	db, mock := newTestDB(t)
	repo := loanRepository{db: db}
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "loans" WHERE id = \$1 AND account_number = \$2`).
		WithArgs(id, "A2", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id, "A2")
	assert.ErrorIs(t, err, loandomain.ErrLoanNotFound)
}

func TestLoanRepository_ApplyRepayment_ClosesAtZero(t *testing.T) {
	db, mock := newTestDB(t)
	repo := loanRepository{db: db}
	id := uuid.New()

	mock.ExpectExec(`UPDATE "loans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "remaining_due" FROM "loans"`).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_due"}).AddRow(int64(0)))
	mock.ExpectExec(`UPDATE "loans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	remaining, err := repo.ApplyRepayment(context.Background(), id, "A1", 110000)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_ApplyRepayment_OverRepayment(t *testing.T) {
	db, mock := newTestDB(t)
	repo := loanRepository{db: db}
	id := uuid.New()

	mock.ExpectExec(`UPDATE "loans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "id" FROM "loans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	_, err := repo.ApplyRepayment(context.Background(), id, "A1", 999999)
	assert.ErrorIs(t, err, loandomain.ErrOverRepayment)
}

func TestLoanRepository_ApplyRepayment_MissingLoan(t *testing.T) {
	db, mock := newTestDB(t)
	repo := loanRepository{db: db}

	mock.ExpectExec(`UPDATE "loans" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "id" FROM "loans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ApplyRepayment(context.Background(), uuid.New(), "A1", 100)
	assert.ErrorIs(t, err, loandomain.ErrLoanNotFound)
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := transactionRepository{db: db}

	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := accountdomain.NewTransferTransaction("A1", "A2", money.FromPaise(2000))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := newTestDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("boom")
	err := uow.Do(context.Background(), func(txUow pkgrepo.UnitOfWork) error {
		accounts, err := txUow.AccountRepository()
		require.NoError(t, err)
		require.NotNil(t, accounts)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesOutsideDo(t *testing.T) {
	db, _ := newTestDB(t)
	uow := NewUoW(db)

	_, err := uow.AccountRepository()
	assert.ErrorIs(t, err, ErrNoTransaction)
	_, err = uow.LoanRepository()
	assert.ErrorIs(t, err, ErrNoTransaction)
	_, err = uow.TransactionRepository()
	assert.ErrorIs(t, err, ErrNoTransaction)
}
