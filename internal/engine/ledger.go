package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// entry is an executed deposit or withdrawal kept for dispute lookups and
// duplicate detection.
type entry struct {
	kind   Kind
	client ClientID
	amount decimal.Decimal
}

// Ledger applies transaction records against client accounts. It owns all
// account and history state and must be driven by a single goroutine; a
// concurrent host has to put its own exclusivity boundary in front of it.
type Ledger struct {
	accounts map[ClientID]*Account
	history  map[TxID]entry
	disputes *DisputeIndex
	log      *zap.Logger
}

type Option func(*Ledger)

// WithLogger routes rejection diagnostics to l instead of discarding them.
func WithLogger(l *zap.Logger) Option {
	return func(lg *Ledger) {
		lg.log = l
	}
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts: make(map[ClientID]*Account),
		history:  make(map[TxID]entry),
		disputes: NewDisputeIndex(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Apply executes one record. A rule violation rejects the record with a
// classified error and leaves the ledger untouched; the caller logs it and
// moves on. A re-sent deposit or withdrawal id is discarded silently.
func (l *Ledger) Apply(rec Record) error {
	switch rec.Kind {
	case KindDeposit:
		return l.applyDeposit(rec)
	case KindWithdrawal:
		return l.applyWithdrawal(rec)
	case KindDispute:
		return l.applyDispute(rec)
	case KindResolve:
		return l.applyResolve(rec)
	case KindChargeback:
		return l.applyChargeback(rec)
	default:
		return fmt.Errorf("record %d: unknown kind %d", rec.Tx, rec.Kind)
	}
}

func (l *Ledger) applyDeposit(rec Record) error {
	if rec.Amount.Sign() <= 0 {
		return fmt.Errorf("deposit %d: %w", rec.Tx, ErrInvalidAmount)
	}
	if l.seen(rec.Tx) {
		return nil
	}

	acct, ok := l.accounts[rec.Client]
	if !ok {
		acct = NewAccount(rec.Client)
		l.accounts[rec.Client] = acct
	}
	acct.Deposit(rec.Amount)

	l.history[rec.Tx] = entry{kind: KindDeposit, client: rec.Client, amount: rec.Amount}
	l.disputes.Open(rec.Tx)
	return nil
}

func (l *Ledger) applyWithdrawal(rec Record) error {
	if rec.Amount.Sign() <= 0 {
		return fmt.Errorf("withdrawal %d: %w", rec.Tx, ErrInvalidAmount)
	}
	if l.seen(rec.Tx) {
		return nil
	}

	acct, ok := l.accounts[rec.Client]
	if !ok {
		// Withdrawals never create accounts.
		return fmt.Errorf("withdrawal %d: %w", rec.Tx, ErrUnknownClient)
	}
	if err := acct.Withdraw(rec.Amount); err != nil {
		return fmt.Errorf("withdrawal %d: %w", rec.Tx, err)
	}

	// Withdrawals are not disputable but their id still occupies the
	// idempotency space.
	l.history[rec.Tx] = entry{kind: KindWithdrawal, client: rec.Client, amount: rec.Amount}
	return nil
}

func (l *Ledger) applyDispute(rec Record) error {
	acct, ent, err := l.reference("dispute", rec)
	if err != nil {
		return err
	}

	if !l.disputes.Transition(rec.Tx, StateClean, StateDisputed) {
		state, _ := l.disputes.Get(rec.Tx)
		if state == StateDisputed {
			return fmt.Errorf("dispute %d: %w", rec.Tx, ErrUnderDispute)
		}
		return fmt.Errorf("dispute %d: %w", rec.Tx, ErrDisputeClosed)
	}

	acct.HoldFunds(ent.amount)
	return nil
}

func (l *Ledger) applyResolve(rec Record) error {
	acct, ent, err := l.reference("resolve", rec)
	if err != nil {
		return err
	}

	if !l.disputes.Transition(rec.Tx, StateDisputed, StateResolved) {
		return fmt.Errorf("resolve %d: %w", rec.Tx, l.closedOrClean(rec.Tx))
	}

	acct.ReleaseFunds(ent.amount)
	return nil
}

func (l *Ledger) applyChargeback(rec Record) error {
	acct, ent, err := l.reference("chargeback", rec)
	if err != nil {
		return err
	}

	if !l.disputes.Transition(rec.Tx, StateDisputed, StateChargedBack) {
		return fmt.Errorf("chargeback %d: %w", rec.Tx, l.closedOrClean(rec.Tx))
	}

	acct.Chargeback(ent.amount)
	return nil
}

// reference validates the shared preconditions of the dispute family: the
// client must exist, the referenced transaction must exist, belong to that
// client, and be a deposit.
func (l *Ledger) reference(op string, rec Record) (*Account, entry, error) {
	acct, ok := l.accounts[rec.Client]
	if !ok {
		return nil, entry{}, fmt.Errorf("%s %d: %w", op, rec.Tx, ErrUnknownClient)
	}
	ent, ok := l.history[rec.Tx]
	if !ok || ent.client != rec.Client {
		return nil, entry{}, fmt.Errorf("%s %d: %w", op, rec.Tx, ErrUnknownTransaction)
	}
	if ent.kind != KindDeposit {
		return nil, entry{}, fmt.Errorf("%s %d: %w", op, rec.Tx, ErrNotDisputable)
	}
	return acct, ent, nil
}

func (l *Ledger) closedOrClean(tx TxID) error {
	if state, ok := l.disputes.Get(tx); ok && state.Final() {
		return ErrDisputeClosed
	}
	return ErrNotDisputed
}

func (l *Ledger) seen(tx TxID) bool {
	if _, ok := l.history[tx]; ok {
		l.log.Debug("duplicate transaction id, discarding", zap.Uint32("tx", uint32(tx)))
		return true
	}
	return false
}

// AccountSummary is one row of the final output.
type AccountSummary struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Snapshot reports the final state of every account, ordered by client id.
func (l *Ledger) Snapshot() []AccountSummary {
	summaries := make([]AccountSummary, 0, len(l.accounts))
	for _, acct := range l.accounts {
		summaries = append(summaries, AccountSummary{
			Client:    acct.ID,
			Available: acct.Available,
			Held:      acct.Held,
			Total:     acct.Total(),
			Locked:    acct.Locked,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Client < summaries[j].Client
	})
	return summaries
}

// AccountCount reports how many accounts the ledger created.
func (l *Ledger) AccountCount() int {
	return len(l.accounts)
}
