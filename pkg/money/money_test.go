package money_test

import (
	"math"
	"testing"

	"github.com/coreledger/banking/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RoundsToPaise(t *testing.T) {
	m, err := money.New(100.005)
	require.NoError(t, err)
	assert.Equal(t, int64(10001), m.Paise())

	m, err = money.New(0.1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), m.Paise())
}

func TestNew_RejectsNonFinite(t *testing.T) {
	_, err := money.New(math.NaN())
	assert.ErrorIs(t, err, money.ErrAmountNotFinite)

	_, err = money.New(math.Inf(1))
	assert.ErrorIs(t, err, money.ErrAmountNotFinite)
}

func TestNewPositive(t *testing.T) {
	_, err := money.NewPositive(0)
	assert.ErrorIs(t, err, money.ErrAmountMustBePositive)

	_, err = money.NewPositive(-5)
	assert.ErrorIs(t, err, money.ErrAmountMustBePositive)

	m, err := money.NewPositive(42.50)
	require.NoError(t, err)
	assert.Equal(t, int64(4250), m.Paise())
}

func TestAddSubtract(t *testing.T) {
	a, _ := money.New(70)
	b, _ := money.New(20)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, sum.Float(), 0.001)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, diff.Float(), 0.001)
}

func TestNew_OverflowAtInt64Boundary(t *testing.T) {
	// Rounds to exactly 2^63 paise, one past math.MaxInt64.
	_, err := money.New(math.Ldexp(1, 63) / 100)
	assert.ErrorIs(t, err, money.ErrAmountOverflow)

	_, err = money.New(1e18)
	assert.ErrorIs(t, err, money.ErrAmountOverflow)

	// -2^63 paise is representable and must still be accepted.
	m, err := money.New(math.Ldexp(-1, 63) / 100)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), m.Paise())
}

func TestAdd_Overflow(t *testing.T) {
	a := money.FromPaise(math.MaxInt64)
	b := money.FromPaise(1)
	_, err := a.Add(b)
	assert.ErrorIs(t, err, money.ErrAmountOverflow)
}

func TestComparisons(t *testing.T) {
	a := money.FromPaise(5000)
	b := money.FromPaise(7000)

	assert.True(t, b.GreaterThan(a))
	assert.False(t, a.GreaterThan(b))
	assert.True(t, a.IsPositive())
	assert.True(t, money.FromPaise(0).IsZero())
}

func TestString(t *testing.T) {
	m := money.FromPaise(110000)
	assert.Equal(t, "INR 1100.00", m.String())
}
