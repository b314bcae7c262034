package run

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/errhandler"
	"github.com/hance08/weka/internal/ui"
)

func newClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved runs",
		Long:  `Delete every saved run and its account snapshots. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed, err := ui.ConfirmDestructive("Delete all saved runs?")
				if err != nil {
					errhandler.HandleError(err)
					return nil
				}
				if !confirmed {
					pterm.Info.Println("Nothing deleted")
					return nil
				}
			}

			deleted, err := svc.Run.ClearRuns()
			if err != nil {
				return err
			}

			pterm.Success.Printf("Deleted %d runs\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
