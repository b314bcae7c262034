package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hance08/weka/internal/store"
)

type RunService struct {
	repo   store.Repository
	config Config
}

func NewRunService(repo store.Repository, cfg Config) *RunService {
	return &RunService{repo: repo, config: cfg}
}

// Precision reports the configured number of output decimal places.
func (rs *RunService) Precision() int32 {
	return rs.config.Precision
}

// SaveRun persists a finished processing run and its account snapshot.
// The write is atomic: either the run and all its rows land, or none do.
func (rs *RunService) SaveRun(sourceFile string, result *ProcessResult) (*store.Run, error) {
	run := store.Run{
		ID:             uuid.NewString(),
		SourceFile:     sourceFile,
		CreatedAt:      time.Now().Unix(),
		ReadCount:      int64(result.Stats.Read),
		AppliedCount:   int64(result.Stats.Applied),
		RejectedCount:  int64(result.Stats.Rejected),
		MalformedCount: int64(result.Stats.Malformed),
	}

	accounts := make([]store.AccountRow, 0, len(result.Accounts))
	for _, acct := range result.Accounts {
		accounts = append(accounts, store.AccountRow{
			RunID:     run.ID,
			ClientID:  int64(acct.Client),
			Available: acct.Available.StringFixed(rs.config.Precision),
			Held:      acct.Held.StringFixed(rs.config.Precision),
			Total:     acct.Total.StringFixed(rs.config.Precision),
			Locked:    acct.Locked,
		})
	}

	err := rs.repo.ExecTx(func(repo store.Repository) error {
		return repo.CreateRun(run, accounts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	return &run, nil
}

// GetRecentRuns lists saved runs, newest first.
func (rs *RunService) GetRecentRuns(limit int) ([]*store.Run, error) {
	runs, err := rs.repo.GetRecentRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	return runs, nil
}

// GetRunByID fetches one run with its account rows.
func (rs *RunService) GetRunByID(id string) (*store.Run, []*store.AccountRow, error) {
	return rs.repo.GetRunByID(id)
}

// ClearRuns deletes every saved run and reports how many were removed.
func (rs *RunService) ClearRuns() (int64, error) {
	deleted, err := rs.repo.DeleteAllRuns()
	if err != nil {
		return 0, fmt.Errorf("failed to clear runs: %w", err)
	}
	return deleted, nil
}
