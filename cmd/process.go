package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/csvio"
	"github.com/hance08/weka/internal/service"
	"github.com/hance08/weka/internal/ui/prompts"
	"github.com/hance08/weka/internal/ui/views"
)

type processFlags struct {
	Output string
	Table  bool
	Save   bool
	Stats  bool
}

type processRunner struct {
	svc   *service.Service
	flags *processFlags
}

func NewProcessCmd(svc *service.Service) *cobra.Command {
	flags := &processFlags{}

	cmd := &cobra.Command{
		Use:     "process [input.csv]",
		Aliases: []string{"p"},
		Short:   "Process a transaction CSV file",
		Long: `Process a CSV file of transaction records and report final account
balances.

The input has the columns "type, client, tx, amount"; the amount column is
blank for dispute, resolve and chargeback rows. Invalid records are skipped,
the run itself never fails on a bad record. Output is CSV on stdout by
default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &processRunner{
				svc:   svc,
				flags: flags,
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				var err error
				input, err = prompts.PromptInputFile("Path to the transaction CSV file")
				if err != nil {
					return err
				}
			}

			return runner.Run(input)
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the CSV snapshot to a file instead of stdout")
	cmd.Flags().BoolVarP(&flags.Table, "table", "t", false, "Render the snapshot as a table instead of CSV")
	cmd.Flags().BoolVarP(&flags.Save, "save", "s", false, "Save the run to the local database")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "Print processing statistics")

	return cmd
}

func (r *processRunner) Run(input string) error {
	path, err := expandPath(input)
	if err != nil {
		return err
	}

	result, err := r.svc.Process.ProcessFile(path)
	if err != nil {
		return err
	}

	if err := r.render(result); err != nil {
		return err
	}

	if r.flags.Stats {
		r.printStats(result)
	}

	if r.flags.Save {
		saved, err := r.svc.Run.SaveRun(path, result)
		if err != nil {
			return err
		}
		pterm.Success.WithWriter(os.Stderr).Printf("Run saved as %s\n", saved.ID)
	}

	return nil
}

func (r *processRunner) render(result *service.ProcessResult) error {
	precision := r.svc.Run.Precision()

	if r.flags.Table {
		return views.NewAccountTableView(precision).Render(result.Accounts)
	}

	out := os.Stdout
	if r.flags.Output != "" {
		if _, err := os.Stat(r.flags.Output); err == nil {
			overwrite, err := prompts.PromptConfirm(
				fmt.Sprintf("File %s already exists. Overwrite?", r.flags.Output), false)
			if err != nil {
				return err
			}
			if !overwrite {
				pterm.Info.Println("Output not written")
				return nil
			}
		}

		f, err := os.Create(r.flags.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return csvio.NewWriter(out, precision).WriteSnapshot(result.Accounts)
}

// printStats goes to stderr so piped CSV output stays clean.
func (r *processRunner) printStats(result *service.ProcessResult) {
	stats := result.Stats
	info := pterm.Info.WithWriter(os.Stderr)

	info.Printf("Read: %d  Applied: %d  Rejected: %d  Malformed: %d  Accounts: %d\n",
		stats.Read, stats.Applied, stats.Rejected, stats.Malformed, len(result.Accounts))

	if len(stats.Reasons) == 0 {
		return
	}

	reasons := make([]string, 0, len(stats.Reasons))
	for reason := range stats.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		info.Printf("  %d x %s\n", stats.Reasons[reason], reason)
	}
}
