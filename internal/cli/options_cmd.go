package cli

import (
	"fmt"

	"github.com/alexanderramin/woodgenie/internal/cli/formatter"
	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/spf13/cobra"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List accepted values for --units, --difficulty and --wood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOptions(domain.DefaultPlanOptions()))
			return nil
		},
	}
}
