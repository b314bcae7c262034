package run

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/ui/views"
)

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := svc.Run.GetRecentRuns(limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				pterm.Info.Println("No saved runs. Use 'weka process --save' to keep one.")
				return nil
			}

			return views.NewRunListView().Render(runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to display")

	return cmd
}
