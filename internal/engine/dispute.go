package engine

// DisputeState is the lifecycle of a disputable (deposit) transaction:
// Clean -> Disputed -> Resolved or ChargedBack. The two final states accept
// no further transitions.
type DisputeState uint8

const (
	StateClean DisputeState = iota
	StateDisputed
	StateResolved
	StateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDisputed:
		return "disputed"
	case StateResolved:
		return "resolved"
	case StateChargedBack:
		return "chargedback"
	default:
		return "unknown"
	}
}

func (s DisputeState) Final() bool {
	return s == StateResolved || s == StateChargedBack
}

// DisputeIndex tracks dispute state per deposit id so resolve and chargeback
// validate against the current state instead of rescanning history. Only ids
// registered through Open (accepted deposits) exist in the index.
type DisputeIndex struct {
	states map[TxID]DisputeState
}

func NewDisputeIndex() *DisputeIndex {
	return &DisputeIndex{states: make(map[TxID]DisputeState)}
}

// Open registers an accepted deposit as disputable.
func (ix *DisputeIndex) Open(tx TxID) {
	ix.states[tx] = StateClean
}

func (ix *DisputeIndex) Get(tx TxID) (DisputeState, bool) {
	s, ok := ix.states[tx]
	return s, ok
}

// Transition moves tx from one state to the next with compare-and-set
// semantics: it reports false and changes nothing unless the current state
// equals from. Final states accept no transition at all. The same discipline
// would hold up under a concurrent caller.
func (ix *DisputeIndex) Transition(tx TxID, from, to DisputeState) bool {
	current, ok := ix.states[tx]
	if !ok || current != from || current.Final() {
		return false
	}
	ix.states[tx] = to
	return true
}
