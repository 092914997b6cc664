package account_test

import (
	"testing"

	"github.com/coreledger/banking/pkg/domain/account"
	"github.com/coreledger/banking/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Defaults(t *testing.T) {
	a, err := account.New().
		WithNumber("A1").
		WithName("Asha").
		WithPin("1234").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "A1", a.Number)
	assert.Equal(t, account.StatusActive, a.Status)
	assert.True(t, a.Balance.IsZero())
	assert.False(t, a.IsClosed())
	assert.NotEqual(t, "1234", a.PinHash, "PIN must not be stored in plaintext")
}

func TestBuilder_RequiredFields(t *testing.T) {
	_, err := account.New().WithName("Asha").WithPin("1234").Build()
	assert.Error(t, err)

	_, err = account.New().WithNumber("A1").WithPin("1234").Build()
	assert.Error(t, err)

	_, err = account.New().WithNumber("A1").WithName("Asha").Build()
	assert.Error(t, err)
}

func TestVerifyPin(t *testing.T) {
	a, err := account.New().
		WithNumber("A1").
		WithName("Asha").
		WithPin("1234").
		Build()
	require.NoError(t, err)

	assert.True(t, a.VerifyPin("1234"))
	assert.False(t, a.VerifyPin("0000"))
}

func TestNewTransaction_RequiresPositiveAmount(t *testing.T) {
	_, err := account.NewTransaction("A1", account.TypeDeposit, money.FromPaise(0))
	assert.ErrorIs(t, err, money.ErrAmountMustBePositive)

	tx, err := account.NewTransaction("A1", account.TypeDeposit, money.FromPaise(100))
	require.NoError(t, err)
	assert.Equal(t, account.TypeDeposit, tx.Type)
	assert.Empty(t, tx.ToAccount)
}

func TestNewTransferTransaction(t *testing.T) {
	tx, err := account.NewTransferTransaction("A1", "A2", money.FromPaise(2000))
	require.NoError(t, err)
	assert.Equal(t, "A1", tx.AccountNumber)
	assert.Equal(t, "A2", tx.ToAccount)
	assert.Equal(t, account.TypeTransfer, tx.Type)
}
