package run

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/store"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one saved run with its account snapshot",
		Long:  `Show a saved run by id. A unique id prefix is enough.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRunID(args[0])
			if err != nil {
				return err
			}

			run, accounts, err := svc.Run.GetRunByID(id)
			if err != nil {
				return err
			}

			return renderRun(run, accounts)
		},
	}
}

// resolveRunID accepts a full uuid or a unique prefix of one.
func resolveRunID(arg string) (string, error) {
	_, _, err := svc.Run.GetRunByID(arg)
	if err == nil {
		return arg, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return "", err
	}

	runs, err := svc.Run.GetRecentRuns(1000)
	if err != nil {
		return "", err
	}

	var match string
	for _, run := range runs {
		if strings.HasPrefix(run.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("run id prefix %q is ambiguous", arg)
			}
			match = run.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no saved run matches %q", arg)
	}
	return match, nil
}

func renderRun(run *store.Run, accounts []*store.AccountRow) error {
	pterm.DefaultSection.Printf("Run %s", run.ID)

	meta := pterm.TableData{
		{"Source", run.SourceFile},
		{"Date", time.Unix(run.CreatedAt, 0).Format(constants.DateFormat)},
		{"Read", strconv.FormatInt(run.ReadCount, 10)},
		{"Applied", strconv.FormatInt(run.AppliedCount, 10)},
		{"Rejected", strconv.FormatInt(run.RejectedCount, 10)},
		{"Malformed", strconv.FormatInt(run.MalformedCount, 10)},
	}
	if err := pterm.DefaultTable.WithData(meta).Render(); err != nil {
		return err
	}

	tableData := pterm.TableData{{"Client", "Available", "Held", "Total", "Locked"}}
	for _, acct := range accounts {
		locked := "no"
		if acct.Locked {
			locked = pterm.Red("LOCKED")
		}
		tableData = append(tableData, []string{
			strconv.FormatInt(acct.ClientID, 10),
			acct.Available,
			acct.Held,
			acct.Total,
			locked,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}
