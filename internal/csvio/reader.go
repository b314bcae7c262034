package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/engine"
)

var (
	ErrMissingAmount = errors.New("transaction requires an amount")
	ErrUnknownType   = errors.New("unknown transaction type")
)

// Reader turns a CSV stream of `type, client, tx, amount` lines into engine
// records. The header row is skipped, surrounding whitespace is tolerated and
// the amount column may be absent entirely for the dispute family.
type Reader struct {
	cr   *csv.Reader
	line int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{cr: cr}
}

// Read returns the next record, io.EOF at end of input, or a per-line error
// the caller can log and skip. The stream stays usable after a bad line.
func (r *Reader) Read() (engine.Record, error) {
	for {
		fields, err := r.cr.Read()
		if err == io.EOF {
			return engine.Record{}, io.EOF
		}
		r.line++
		if err != nil {
			return engine.Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		if r.line == 1 && isHeader(fields) {
			continue
		}

		rec, err := r.parse(fields)
		if err != nil {
			return engine.Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}
}

func (r *Reader) parse(fields []string) (engine.Record, error) {
	if len(fields) < 3 {
		return engine.Record{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}

	kind := strings.ToLower(strings.TrimSpace(fields[0]))

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return engine.Record{}, fmt.Errorf("invalid client id %q", fields[1])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return engine.Record{}, fmt.Errorf("invalid transaction id %q", fields[2])
	}

	clientID := engine.ClientID(client)
	txID := engine.TxID(tx)

	switch kind {
	case "deposit":
		amount, err := r.amount(fields)
		if err != nil {
			return engine.Record{}, err
		}
		return engine.NewDeposit(txID, clientID, amount)
	case "withdrawal":
		amount, err := r.amount(fields)
		if err != nil {
			return engine.Record{}, err
		}
		return engine.NewWithdrawal(txID, clientID, amount)
	case "dispute":
		return engine.NewDispute(txID, clientID), nil
	case "resolve":
		return engine.NewResolve(txID, clientID), nil
	case "chargeback":
		return engine.NewChargeback(txID, clientID), nil
	default:
		return engine.Record{}, fmt.Errorf("%w: %q", ErrUnknownType, fields[0])
	}
}

func (r *Reader) amount(fields []string) (decimal.Decimal, error) {
	if len(fields) < 4 || strings.TrimSpace(fields[3]) == "" {
		return decimal.Zero, ErrMissingAmount
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", fields[3])
	}
	return amount, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "type")
}
