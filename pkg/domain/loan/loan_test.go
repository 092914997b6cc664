package loan_test

import (
	"testing"

	"github.com/coreledger/banking/pkg/domain/loan"
	"github.com/coreledger/banking/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.NewPositive(amount)
	require.NoError(t, err)
	return m
}

func TestNew_ComputesRemainingDue(t *testing.T) {
	l, err := loan.New("A1", mustMoney(t, 1000), 10, 12)
	require.NoError(t, err)

	assert.InDelta(t, 1100.0, l.RemainingDue.Float(), 0.001)
	assert.Equal(t, loan.StatusActive, l.Status)
	assert.Equal(t, "A1", l.AccountNumber)
}

func TestNew_ZeroInterest(t *testing.T) {
	l, err := loan.New("A1", mustMoney(t, 500), 0, 6)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, l.RemainingDue.Float(), 0.001)
}

func TestNew_Validation(t *testing.T) {
	_, err := loan.New("", mustMoney(t, 1000), 10, 12)
	assert.Error(t, err)

	_, err = loan.New("A1", money.FromPaise(0), 10, 12)
	assert.ErrorIs(t, err, money.ErrAmountMustBePositive)

	_, err = loan.New("A1", mustMoney(t, 1000), -1, 12)
	assert.Error(t, err)

	_, err = loan.New("A1", mustMoney(t, 1000), 10, 0)
	assert.Error(t, err)
}

func TestRepay_PartialKeepsActive(t *testing.T) {
	l, err := loan.New("A1", mustMoney(t, 1000), 10, 12)
	require.NoError(t, err)

	require.NoError(t, l.Repay(mustMoney(t, 100)))
	assert.InDelta(t, 1000.0, l.RemainingDue.Float(), 0.001)
	assert.Equal(t, loan.StatusActive, l.Status)
}

func TestRepay_FullClosesExactlyAtZero(t *testing.T) {
	l, err := loan.New("A1", mustMoney(t, 1000), 10, 12)
	require.NoError(t, err)

	require.NoError(t, l.Repay(mustMoney(t, 1099.99)))
	assert.Equal(t, loan.StatusActive, l.Status, "loan must stay active while due > 0")

	require.NoError(t, l.Repay(mustMoney(t, 0.01)))
	assert.True(t, l.RemainingDue.IsZero())
	assert.Equal(t, loan.StatusClosed, l.Status)
}

func TestRepay_OverRepaymentLeavesDueUnchanged(t *testing.T) {
	l, err := loan.New("A1", mustMoney(t, 1000), 10, 12)
	require.NoError(t, err)

	err = l.Repay(mustMoney(t, 1100.01))
	assert.ErrorIs(t, err, loan.ErrOverRepayment)
	assert.InDelta(t, 1100.0, l.RemainingDue.Float(), 0.001)

	// A fully repaid loan rejects any further positive repayment.
	require.NoError(t, l.Repay(mustMoney(t, 1100)))
	err = l.Repay(mustMoney(t, 0.01))
	assert.ErrorIs(t, err, loan.ErrOverRepayment)
}
