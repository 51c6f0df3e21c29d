package cli

import (
	"errors"
	"time"

	"github.com/alexanderramin/woodgenie/internal/service"
	"github.com/spf13/cobra"
)

// ErrNotConfigured is returned by plan when no AI client could be built and
// --offline was not given.
var ErrNotConfigured = errors.New("AI service not configured (set WOODGENIE_API_KEY or pass --offline)")

// App holds the services used by CLI commands.
type App struct {
	// Plans generates plans through the AI service. It is nil when the
	// client could not be configured; PlansErr then says why.
	Plans    service.PlanService
	PlansErr error

	// OfflinePlans always produces the sample plan. History commands use
	// it when Plans is nil, since both share the same store.
	OfflinePlans service.PlanService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is used for relative timestamps. Nil means time.Now.
	Now func() time.Time

	// EnableLogging is called before any command runs when --verbose is set.
	EnableLogging func()
}

func (a *App) history() service.PlanService {
	if a.Plans != nil {
		return a.Plans
	}
	return a.OfflinePlans
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "woodgenie" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "woodgenie",
		Short:         "Turn a furniture photo into a woodworking build plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.EnableLogging != nil {
				app.EnableLogging()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log AI calls and use cases to stderr")

	root.AddCommand(
		newPlanCmd(app),
		newHistoryCmd(app),
		newOptionsCmd(),
	)

	return root
}
