package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hance08/weka/internal/engine"
)

// Writer renders account summaries as `client, available, held, total,
// locked` with amounts fixed to a given number of decimal places.
type Writer struct {
	cw        *csv.Writer
	precision int32
}

func NewWriter(w io.Writer, precision int32) *Writer {
	return &Writer{cw: csv.NewWriter(w), precision: precision}
}

func (w *Writer) WriteSnapshot(accounts []engine.AccountSummary) error {
	if err := w.cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, acct := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acct.Client), 10),
			acct.Available.StringFixed(w.precision),
			acct.Held.StringFixed(w.precision),
			acct.Total.StringFixed(w.precision),
			strconv.FormatBool(acct.Locked),
		}
		if err := w.cw.Write(row); err != nil {
			return err
		}
	}
	w.cw.Flush()
	return w.cw.Error()
}
