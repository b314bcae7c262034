package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDepositRounds(t *testing.T) {
	a := NewAccount(1)
	a.Deposit(dec(t, "3.14159"))
	assert.True(t, a.Available.Equal(dec(t, "3.1416")))

	a.Deposit(dec(t, "0.00004"))
	assert.True(t, a.Available.Equal(dec(t, "3.1416")))
}

func TestAccountWithdraw(t *testing.T) {
	a := NewAccount(1)
	a.Deposit(dec(t, "10"))

	require.NoError(t, a.Withdraw(dec(t, "4.5")))
	assert.True(t, a.Available.Equal(dec(t, "5.5")))

	err := a.Withdraw(dec(t, "5.5001"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, a.Available.Equal(dec(t, "5.5")))
}

func TestAccountWithdrawLocked(t *testing.T) {
	a := NewAccount(1)
	a.Deposit(dec(t, "10"))
	a.Locked = true

	err := a.Withdraw(dec(t, "1"))
	require.ErrorIs(t, err, ErrAccountLocked)
	assert.True(t, a.Available.Equal(dec(t, "10")))
}

func TestAccountHoldAndRelease(t *testing.T) {
	a := NewAccount(1)
	a.Deposit(dec(t, "10"))

	a.HoldFunds(dec(t, "4"))
	assert.True(t, a.Available.Equal(dec(t, "6")))
	assert.True(t, a.Held.Equal(dec(t, "4")))
	assert.True(t, a.Total().Equal(dec(t, "10")))

	a.ReleaseFunds(dec(t, "4"))
	assert.True(t, a.Available.Equal(dec(t, "10")))
	assert.True(t, a.Held.Equal(dec(t, "0")))
}

func TestAccountChargeback(t *testing.T) {
	a := NewAccount(1)
	a.Deposit(dec(t, "10"))
	a.HoldFunds(dec(t, "10"))

	a.Chargeback(dec(t, "10"))
	assert.True(t, a.Available.Equal(dec(t, "0")))
	assert.True(t, a.Held.Equal(dec(t, "0")))
	assert.True(t, a.Locked)
}
