package store

type Run struct {
	ID             string
	SourceFile     string
	CreatedAt      int64
	ReadCount      int64
	AppliedCount   int64
	RejectedCount  int64
	MalformedCount int64
}

// AccountRow is one persisted snapshot row. Amounts are stored as exact
// decimal strings, never floats.
type AccountRow struct {
	RunID     string
	ClientID  int64
	Available string
	Held      string
	Total     string
	Locked    bool
}
