package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func deposit(t *testing.T, tx TxID, client ClientID, amount string) Record {
	t.Helper()
	rec, err := NewDeposit(tx, client, dec(t, amount))
	require.NoError(t, err)
	return rec
}

func withdrawal(t *testing.T, tx TxID, client ClientID, amount string) Record {
	t.Helper()
	rec, err := NewWithdrawal(tx, client, dec(t, amount))
	require.NoError(t, err)
	return rec
}

// assertAccount checks an account's balances and the total invariant.
func assertAccount(t *testing.T, l *Ledger, id ClientID, available, held string, locked bool) {
	t.Helper()
	acct, ok := l.accounts[id]
	require.True(t, ok, "account %d should exist", id)
	assert.True(t, acct.Available.Equal(dec(t, available)),
		"available: want %s, got %s", available, acct.Available)
	assert.True(t, acct.Held.Equal(dec(t, held)),
		"held: want %s, got %s", held, acct.Held)
	assert.Equal(t, locked, acct.Locked)
	assert.True(t, acct.Total().Equal(acct.Available.Add(acct.Held)))
}

func TestDeposit(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "10")))

	assert.Len(t, l.accounts, 1)
	assertAccount(t, l, 0, "10", "0", false)
}

func TestDepositKeepsFourDecimals(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "3.1415926535")))

	assertAccount(t, l, 0, "3.1416", "0", false)
}

func TestDepositDuplicateIDIgnored(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "10")))
	require.NoError(t, l.Apply(deposit(t, 0, 0, "99")))

	assertAccount(t, l, 0, "10", "0", false)
}

func TestDepositInvalidAmountRejected(t *testing.T) {
	l := New()

	rec := Record{Kind: KindDeposit, Tx: 0, Client: 1, Amount: dec(t, "-5")}
	err := l.Apply(rec)
	require.ErrorIs(t, err, ErrInvalidAmount)

	// A rejected deposit must not create the account.
	assert.Empty(t, l.accounts)
	assert.Empty(t, l.history)
}

func TestWithdrawal(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "10")))
	require.NoError(t, l.Apply(withdrawal(t, 1, 0, "7")))

	assertAccount(t, l, 0, "3", "0", false)
}

func TestWithdrawalUnknownClient(t *testing.T) {
	l := New()
	err := l.Apply(withdrawal(t, 0, 0, "7"))
	require.ErrorIs(t, err, ErrUnknownClient)

	// Withdrawals never create accounts.
	assert.Empty(t, l.accounts)
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "10")))

	err := l.Apply(withdrawal(t, 1, 0, "10.0001"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assertAccount(t, l, 0, "10", "0", false)
}

func TestWithdrawalDuplicateIDIgnored(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "10")))
	require.NoError(t, l.Apply(withdrawal(t, 1, 0, "4")))
	require.NoError(t, l.Apply(withdrawal(t, 1, 0, "4")))

	assertAccount(t, l, 0, "6", "0", false)
}

func TestWithdrawalLockedAccount(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "51")))
	require.NoError(t, l.Apply(deposit(t, 1, 0, "15")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))
	require.NoError(t, l.Apply(NewChargeback(0, 0)))

	assertAccount(t, l, 0, "15", "0", true)

	err := l.Apply(withdrawal(t, 2, 0, "10.55"))
	require.ErrorIs(t, err, ErrAccountLocked)

	assertAccount(t, l, 0, "15", "0", true)
}

func TestDispute(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(deposit(t, 1, 0, "5.9")))

	assertAccount(t, l, 0, "10.9", "0", false)

	require.NoError(t, l.Apply(NewDispute(1, 0)))
	assertAccount(t, l, 0, "5", "5.9", false)
}

func TestDisputeUnknownClient(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))

	err := l.Apply(NewDispute(0, 1))
	require.ErrorIs(t, err, ErrUnknownClient)
	assert.Len(t, l.accounts, 1)
}

func TestDisputeUnknownTransaction(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))

	err := l.Apply(NewDispute(2, 0))
	require.ErrorIs(t, err, ErrUnknownTransaction)
}

func TestDisputeWrongClient(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(deposit(t, 1, 1, "7")))

	// Client 1 cannot dispute client 0's deposit.
	err := l.Apply(NewDispute(0, 1))
	require.ErrorIs(t, err, ErrUnknownTransaction)

	assertAccount(t, l, 0, "5", "0", false)
	assertAccount(t, l, 1, "7", "0", false)
}

func TestDisputeOnWithdrawal(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(withdrawal(t, 1, 0, "2")))

	// The withdrawal id is found in history but only deposits are disputable.
	err := l.Apply(NewDispute(1, 0))
	require.ErrorIs(t, err, ErrNotDisputable)
}

func TestDisputeTwiceRejected(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))

	err := l.Apply(NewDispute(0, 0))
	require.ErrorIs(t, err, ErrUnderDispute)

	assertAccount(t, l, 0, "0", "5", false)
}

func TestResolve(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 2, 0, "5")))
	require.NoError(t, l.Apply(deposit(t, 1, 1, "55")))
	require.NoError(t, l.Apply(deposit(t, 0, 0, "51")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))

	assert.Len(t, l.accounts, 2)
	assertAccount(t, l, 0, "5", "51", false)

	require.NoError(t, l.Apply(NewResolve(0, 0)))
	assertAccount(t, l, 0, "56", "0", false)
}

func TestResolveNotDisputed(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))

	err := l.Apply(NewResolve(0, 0))
	require.ErrorIs(t, err, ErrNotDisputed)
}

func TestResolveUnknownTransaction(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))

	err := l.Apply(NewResolve(2, 0))
	require.ErrorIs(t, err, ErrUnknownTransaction)
}

func TestResolveOnWithdrawal(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(withdrawal(t, 1, 0, "2")))

	err := l.Apply(NewResolve(1, 0))
	require.ErrorIs(t, err, ErrNotDisputable)
}

func TestResolveIsTerminal(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))
	require.NoError(t, l.Apply(NewResolve(0, 0)))

	require.ErrorIs(t, l.Apply(NewResolve(0, 0)), ErrDisputeClosed)
	require.ErrorIs(t, l.Apply(NewDispute(0, 0)), ErrDisputeClosed)
	require.ErrorIs(t, l.Apply(NewChargeback(0, 0)), ErrDisputeClosed)

	assertAccount(t, l, 0, "5", "0", false)
}

func TestChargeback(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 2, 0, "5")))
	require.NoError(t, l.Apply(deposit(t, 1, 1, "55")))
	require.NoError(t, l.Apply(deposit(t, 0, 0, "51")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))

	assertAccount(t, l, 0, "5", "51", false)

	require.NoError(t, l.Apply(NewChargeback(0, 0)))
	assertAccount(t, l, 0, "5", "0", true)
}

func TestChargebackNotDisputed(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))

	err := l.Apply(NewChargeback(0, 0))
	require.ErrorIs(t, err, ErrNotDisputed)
	assertAccount(t, l, 0, "5", "0", false)
}

func TestChargebackIsTerminal(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 0, "5")))
	require.NoError(t, l.Apply(NewDispute(0, 0)))
	require.NoError(t, l.Apply(NewChargeback(0, 0)))

	require.ErrorIs(t, l.Apply(NewResolve(0, 0)), ErrDisputeClosed)
	require.ErrorIs(t, l.Apply(NewChargeback(0, 0)), ErrDisputeClosed)
	require.ErrorIs(t, l.Apply(NewDispute(0, 0)), ErrDisputeClosed)

	assertAccount(t, l, 0, "0", "0", true)
}

// A dispute opened after the deposited funds were withdrawn drives available
// negative; resolve brings it back.
func TestDisputeAfterWithdrawalGoesNegative(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 1, 1, "10")))
	require.NoError(t, l.Apply(withdrawal(t, 2, 1, "5")))

	assertAccount(t, l, 1, "5", "0", false)

	require.NoError(t, l.Apply(NewDispute(1, 1)))
	assertAccount(t, l, 1, "-5", "10", false)

	require.NoError(t, l.Apply(NewResolve(1, 1)))
	assertAccount(t, l, 1, "5", "0", false)

	err := l.Apply(NewResolve(1, 1))
	require.ErrorIs(t, err, ErrDisputeClosed)
	assertAccount(t, l, 1, "5", "0", false)
}

func TestChargebackThenWithdrawalRejected(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 1, 1, "10")))
	require.NoError(t, l.Apply(NewDispute(1, 1)))
	assertAccount(t, l, 1, "0", "10", false)

	require.NoError(t, l.Apply(NewChargeback(1, 1)))
	assertAccount(t, l, 1, "0", "0", true)

	err := l.Apply(withdrawal(t, 2, 1, "1"))
	require.ErrorIs(t, err, ErrAccountLocked)
}

func TestSnapshotSortedByClient(t *testing.T) {
	l := New()
	require.NoError(t, l.Apply(deposit(t, 0, 7, "1")))
	require.NoError(t, l.Apply(deposit(t, 1, 3, "2")))
	require.NoError(t, l.Apply(deposit(t, 2, 5, "3")))

	snapshot := l.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, ClientID(3), snapshot[0].Client)
	assert.Equal(t, ClientID(5), snapshot[1].Client)
	assert.Equal(t, ClientID(7), snapshot[2].Client)

	for _, row := range snapshot {
		assert.True(t, row.Total.Equal(row.Available.Add(row.Held)))
	}
}

func TestAccountCount(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.AccountCount())

	require.NoError(t, l.Apply(deposit(t, 0, 1, "1")))
	require.NoError(t, l.Apply(deposit(t, 1, 2, "1")))
	assert.Equal(t, 2, l.AccountCount())
}
