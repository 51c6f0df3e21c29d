package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/woodgenie/internal/cli/formatter"
	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	opts := domain.DefaultPlanOptions()
	var offline bool
	var format string

	cmd := &cobra.Command{
		Use:   "plan IMAGE",
		Short: "Generate a build plan from a furniture photo",
		Long: `Generate a build plan from a furniture photo.

When the AI service fails or returns an unusable answer, a sample plan
for the chosen options is shown instead and marked as such.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.Plans
			if offline {
				svc = app.OfflinePlans
			}
			if svc == nil {
				if app.PlansErr != nil {
					return fmt.Errorf("%w: %v", ErrNotConfigured, app.PlansErr)
				}
				return ErrNotConfigured
			}

			if app.interactive() && !planOptionFlagsChanged(cmd.Flags()) && format == "text" {
				if err := planOptionsForm(&opts).Run(); err != nil {
					return err
				}
			}

			in := service.GenerateInput{ImagePath: args[0], Options: opts}
			rec, err := generate(cmd.Context(), app, svc, cmd.ErrOrStderr(), in)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), rec, format)
		},
	}

	addPlanOptionFlags(cmd.Flags(), &opts)
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the AI service and show the sample plan")
	cmd.Flags().Var(newFormatFlag(&format, "text", "text", "json", "yaml", "markdown"), "format", "Output format: text, json, yaml or markdown")

	return cmd
}

// generate runs the request, with a spinner on interactive terminals.
func generate(ctx context.Context, app *App, svc service.PlanService, status io.Writer, in service.GenerateInput) (*domain.PlanRecord, error) {
	if !app.interactive() {
		return svc.Generate(ctx, in)
	}

	var rec *domain.PlanRecord
	var err error
	spinErr := formatter.RunWithSpinner(ctx, status, "Analyzing photo and drafting your plan...", func(ctx context.Context) {
		rec, err = svc.Generate(ctx, in)
	})
	if spinErr != nil {
		return nil, fmt.Errorf("plan cancelled: %w", spinErr)
	}
	return rec, err
}

func writePlan(w io.Writer, rec *domain.PlanRecord, format string) error {
	switch format {
	case "json":
		data, err := formatter.PlanJSON(rec)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "yaml":
		data, err := formatter.PlanYAML(rec)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "markdown":
		_, err := io.WriteString(w, formatter.FormatPlanMarkdown(rec))
		return err
	default:
		_, err := io.WriteString(w, formatter.FormatPlan(rec))
		return err
	}
}
