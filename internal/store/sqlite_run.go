package store

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "github.com/mattn/go-sqlite3"
)

// CreateRun inserts a run and its account snapshot rows.
// It relies on the caller (Service layer) to wrap it in ExecTx for atomicity.
func (s *Store) CreateRun(run Run, accounts []AccountRow) error {
	stmtRun, err := s.db.Prepare(`
        INSERT INTO runs (id, source_file, created_at, read_count, applied_count, rejected_count, malformed_count)
        VALUES (?, ?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare run SQL: %w", err)
	}
	defer stmtRun.Close()

	_, err = stmtRun.Exec(
		run.ID,
		run.SourceFile,
		run.CreatedAt,
		run.ReadCount,
		run.AppliedCount,
		run.RejectedCount,
		run.MalformedCount,
	)
	if err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code == sqlite.ErrConstraint || sqliteErr.ExtendedCode == sqlite.ErrConstraintPrimaryKey {
				return ErrRunExists
			}
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmtAcct, err := s.db.Prepare(`
        INSERT INTO run_accounts (run_id, client_id, available, held, total, locked)
        VALUES (?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare account SQL: %w", err)
	}
	defer stmtAcct.Close()

	for _, acct := range accounts {
		_, err := stmtAcct.Exec(run.ID, acct.ClientID, acct.Available, acct.Held, acct.Total, acct.Locked)
		if err != nil {
			return fmt.Errorf("failed to insert account row (client_id: %d): %w", acct.ClientID, err)
		}
	}

	return nil
}

func (s *Store) GetRunByID(id string) (*Run, []*AccountRow, error) {
	var run Run
	err := s.db.QueryRow(`
        SELECT id, source_file, created_at, read_count, applied_count, rejected_count, malformed_count
        FROM runs
        WHERE id = ?
    `, id).Scan(
		&run.ID,
		&run.SourceFile,
		&run.CreatedAt,
		&run.ReadCount,
		&run.AppliedCount,
		&run.RejectedCount,
		&run.MalformedCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrRecordNotFound
		}
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT run_id, client_id, available, held, total, locked
        FROM run_accounts
        WHERE run_id = ?
        ORDER BY client_id
    `, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query account rows: %w", err)
	}
	defer rows.Close()

	var accounts []*AccountRow
	for rows.Next() {
		acct := &AccountRow{}
		err := rows.Scan(
			&acct.RunID,
			&acct.ClientID,
			&acct.Available,
			&acct.Held,
			&acct.Total,
			&acct.Locked,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acct)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return &run, accounts, nil
}

func (s *Store) GetRecentRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
        SELECT id, source_file, created_at, read_count, applied_count, rejected_count, malformed_count
        FROM runs
        ORDER BY created_at DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		err := rows.Scan(
			&run.ID,
			&run.SourceFile,
			&run.CreatedAt,
			&run.ReadCount,
			&run.AppliedCount,
			&run.RejectedCount,
			&run.MalformedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

func (s *Store) DeleteAllRuns() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	return res.RowsAffected()
}
