package store

type Repository interface {
	// Run Operations
	CreateRun(run Run, accounts []AccountRow) error
	GetRunByID(id string) (*Run, []*AccountRow, error)
	GetRecentRuns(limit int) ([]*Run, error)
	DeleteAllRuns() (int64, error)

	ExecTx(fn func(Repository) error) error
	Close() error
}
