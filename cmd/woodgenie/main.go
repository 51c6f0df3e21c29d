package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/alexanderramin/woodgenie/internal/cli"
	"github.com/alexanderramin/woodgenie/internal/db"
	"github.com/alexanderramin/woodgenie/internal/intelligence"
	"github.com/alexanderramin/woodgenie/internal/llm"
	"github.com/alexanderramin/woodgenie/internal/repository"
	"github.com/alexanderramin/woodgenie/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logSwitch forwards writes to stderr once enabled and drops them before.
type logSwitch struct {
	on atomic.Bool
}

func (s *logSwitch) Write(p []byte) (int, error) {
	if !s.on.Load() {
		return len(p), nil
	}
	return os.Stderr.Write(p)
}

func run() error {
	// Determine DB path: env var or default ~/.woodgenie/woodgenie.db
	dbPath := os.Getenv("WOODGENIE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".woodgenie", "woodgenie.db")
	}

	var maxImageBytes int64
	if v := os.Getenv("WOODGENIE_MAX_IMAGE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxImageBytes = n
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	llmCfg := llm.LoadConfig()

	logs := &logSwitch{}
	logs.on.Store(llmCfg.LogCalls)
	var logOut io.Writer = logs

	observer := llm.NewLogObserver(logOut)
	useCases := service.NewLogUseCaseObserver(logOut)

	plans := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		OfflinePlans:  service.NewPlanService(intelligence.OfflinePlanService{}, plans, uow, maxImageBytes, useCases),
		EnableLogging: func() { logs.on.Store(true) },
	}

	// Detect interactive terminal for the option picker and spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if llmCfg.Offline {
		app.Plans = app.OfflinePlans
	} else {
		client, err := llm.NewVisionClient(context.Background(), llmCfg, observer)
		if err != nil {
			app.PlansErr = err
		} else {
			acquirer := intelligence.NewPlanService(client, observer)
			app.Plans = service.NewPlanService(acquirer, plans, uow, maxImageBytes, useCases)
		}
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
