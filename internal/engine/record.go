package engine

import (
	"github.com/shopspring/decimal"
)

// ClientID identifies an account. Accounts are created lazily on the first
// accepted deposit that references them.
type ClientID uint16

// TxID is globally unique across the input stream and doubles as the
// idempotency key for deposits and withdrawals.
type TxID uint32

type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Record is one incoming transaction. It is a closed union over the five
// kinds: deposits and withdrawals carry their own id and an amount, while
// dispute, resolve and chargeback reference a prior deposit by Tx and carry
// no amount of their own.
type Record struct {
	Kind   Kind
	Tx     TxID
	Client ClientID
	Amount decimal.Decimal
}

func NewDeposit(tx TxID, client ClientID, amount decimal.Decimal) (Record, error) {
	if amount.Sign() <= 0 {
		return Record{}, ErrInvalidAmount
	}
	return Record{Kind: KindDeposit, Tx: tx, Client: client, Amount: amount}, nil
}

func NewWithdrawal(tx TxID, client ClientID, amount decimal.Decimal) (Record, error) {
	if amount.Sign() <= 0 {
		return Record{}, ErrInvalidAmount
	}
	return Record{Kind: KindWithdrawal, Tx: tx, Client: client, Amount: amount}, nil
}

func NewDispute(refTx TxID, client ClientID) Record {
	return Record{Kind: KindDispute, Tx: refTx, Client: client}
}

func NewResolve(refTx TxID, client ClientID) Record {
	return Record{Kind: KindResolve, Tx: refTx, Client: client}
}

func NewChargeback(refTx TxID, client ClientID) Record {
	return Record{Kind: KindChargeback, Tx: refTx, Client: client}
}
