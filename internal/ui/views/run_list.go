package views

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/store"
)

type RunListView struct{}

func NewRunListView() *RunListView {
	return &RunListView{}
}

func (v *RunListView) Render(runs []*store.Run) error {
	headers := []string{"ID", "Date", "Source", "Read", "Applied", "Rejected", "Malformed"}
	tableData := pterm.TableData{headers}

	for _, run := range runs {
		date := time.Unix(run.CreatedAt, 0).Format(constants.DateFormat)

		rejected := fmt.Sprintf("%d", run.RejectedCount)
		if run.RejectedCount > 0 {
			rejected = pterm.Yellow(rejected)
		}
		malformed := fmt.Sprintf("%d", run.MalformedCount)
		if run.MalformedCount > 0 {
			malformed = pterm.Yellow(malformed)
		}

		tableData = append(tableData, []string{
			shortID(run.ID),
			date,
			run.SourceFile,
			fmt.Sprintf("%d", run.ReadCount),
			fmt.Sprintf("%d", run.AppliedCount),
			rejected,
			malformed,
		})
	}

	pterm.DefaultSection.Printf("Saved Runs")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d runs\n", len(runs))

	return nil
}

// shortID keeps the first uuid group, enough to address a run via `run show`.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
