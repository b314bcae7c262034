package run

import (
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/service"
)

var svc *service.Service

func NewRunCmd(s *service.Service) *cobra.Command {
	svc = s

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"runs", "r"},
		Short:   "Inspect saved processing runs",
		Long:    `List, show or clear processing runs saved with 'weka process --save'.`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}
