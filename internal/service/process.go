package service

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hance08/weka/internal/csvio"
	"github.com/hance08/weka/internal/engine"
)

// ProcessStats counts what happened to every input line. Rejected records are
// bucketed by the ledger's classification so a run summary can show why input
// was discarded without making any rejection fatal.
type ProcessStats struct {
	Read      int
	Applied   int
	Rejected  int
	Malformed int
	Reasons   map[string]int
}

type ProcessResult struct {
	Accounts []engine.AccountSummary
	Stats    ProcessStats
}

type ProcessService struct {
	config Config
	log    *zap.Logger
}

func NewProcessService(cfg Config, log *zap.Logger) *ProcessService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessService{config: cfg, log: log}
}

// ProcessFile runs the full transaction stream from path through a fresh
// ledger and returns the final account snapshot with processing stats.
func (ps *ProcessService) ProcessFile(path string) (*ProcessResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return ps.Process(f)
}

// Process consumes the stream to the end. Malformed lines and rejected
// records are logged and skipped; only I/O level failures abort the run.
func (ps *ProcessService) Process(r io.Reader) (*ProcessResult, error) {
	ledger := engine.New(engine.WithLogger(ps.log))
	reader := csvio.NewReader(r)

	stats := ProcessStats{Reasons: make(map[string]int)}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Read++

		if err != nil {
			stats.Malformed++
			ps.count(&stats, err)
			ps.log.Debug("skipping malformed record", zap.Error(err))
			continue
		}

		if err := ledger.Apply(rec); err != nil {
			stats.Rejected++
			ps.count(&stats, err)
			ps.log.Debug("record rejected",
				zap.String("kind", rec.Kind.String()),
				zap.Uint32("tx", uint32(rec.Tx)),
				zap.Uint16("client", uint16(rec.Client)),
				zap.Error(err),
			)
			continue
		}

		stats.Applied++
	}

	return &ProcessResult{
		Accounts: ledger.Snapshot(),
		Stats:    stats,
	}, nil
}

// count buckets a rejection under its sentinel classification.
func (ps *ProcessService) count(stats *ProcessStats, err error) {
	for _, sentinel := range []error{
		engine.ErrInvalidAmount,
		engine.ErrUnknownClient,
		engine.ErrUnknownTransaction,
		engine.ErrNotDisputable,
		engine.ErrUnderDispute,
		engine.ErrNotDisputed,
		engine.ErrDisputeClosed,
		engine.ErrAccountLocked,
		engine.ErrInsufficientFunds,
		csvio.ErrMissingAmount,
		csvio.ErrUnknownType,
	} {
		if errors.Is(err, sentinel) {
			stats.Reasons[sentinel.Error()]++
			return
		}
	}
	stats.Reasons["malformed input"]++
}
