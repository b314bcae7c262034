package engine

import "github.com/shopspring/decimal"

// Precision is the number of decimal places kept on every balance mutation.
const Precision int32 = 4

// Account is the per-client mutable state. Available may go negative only
// through the dispute path: funds withdrawn after a deposit can no longer
// cover the hold when that deposit is disputed. Held never goes below zero.
type Account struct {
	ID        ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

func NewAccount(id ClientID) *Account {
	return &Account{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

func (a *Account) Deposit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount).Round(Precision)
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount).Round(Precision)
	return nil
}

// HoldFunds moves the disputed amount from available into held.
func (a *Account) HoldFunds(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount).Round(Precision)
	a.Held = a.Held.Add(amount).Round(Precision)
}

// ReleaseFunds returns a resolved dispute's amount to available.
func (a *Account) ReleaseFunds(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount).Round(Precision)
	a.Available = a.Available.Add(amount).Round(Precision)
}

// Chargeback withdraws the held amount and freezes the account. Available is
// left untouched: the funds already moved out of it when the dispute opened.
func (a *Account) Chargeback(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount).Round(Precision)
	a.Locked = true
}

func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}
