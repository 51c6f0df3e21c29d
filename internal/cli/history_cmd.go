package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/woodgenie/internal/cli/formatter"
	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Browse, export and clear saved plans",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryExportCmd(app),
		newHistoryDeleteCmd(app),
		newHistoryResetCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var (
		limit int
		image string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved plans, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				records []*domain.PlanRecord
				err     error
			)
			if image != "" {
				records, err = app.history().ListByImage(cmd.Context(), image, limit)
			} else {
				records, err = app.history().List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of plans to show (0 for all)")
	cmd.Flags().StringVar(&image, "image", "", "Only show plans made from this photo")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved plan (ID, short ID such as WG0001, or \"latest\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.history().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("plan %q: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(rec))
			return nil
		},
	}
}

func newHistoryExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a saved plan as Markdown, JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.history().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("plan %q: %w", args[0], err)
			}

			if output == "" || output == "-" {
				return writePlan(cmd.OutOrStdout(), rec, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := writePlan(f, rec, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", rec.DisplayID(), output)
			return nil
		},
	}

	cmd.Flags().Var(newFormatFlag(&format, "markdown", "markdown", "json", "yaml"), "format", "Export format: markdown, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.history().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("plan %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", args[0])
			return nil
		},
	}
}

func newHistoryResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a new project: delete every saved plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete history without --yes")
				}
				confirmed, err := confirmReset()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			n, err := app.history().Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d plan(s). Ready for a new project.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
