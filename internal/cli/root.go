package cli

import (
	"time"

	"github.com/spf13/cobra"

	"tasklog/internal/backend"
	"tasklog/internal/log"
	"tasklog/internal/services"
)

// App holds the dependencies shared by all commands.
type App struct {
	Store  backend.Backend
	Stats  *services.StatsService
	Prompt Prompter
	Now    func() time.Time
	// IsInteractive reports whether stdin is a terminal. Prompts are only
	// shown when it returns true.
	IsInteractive func() bool

	logger *log.Logger
}

// NewApp wires an App around a record store.
func NewApp(store backend.Backend, prompt Prompter, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	return &App{
		Store:  store,
		Stats:  services.NewStatsService(store, now),
		Prompt: prompt,
		Now:    now,
	}
}

func (a *App) interactive() bool {
	return a.Prompt != nil && a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) cliLogger() *log.Logger {
	if a.logger == nil {
		a.logger = log.WithComponent(log.ComponentCLI)
	}
	return a.logger
}

// NewRootCmd creates the top-level "tasklog" command. Without a subcommand
// it opens the interactive menu on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasklog",
		Short:         "Log team tasks to Google Sheets and report monthly hours",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return app.runMenu(cmd)
		},
	}

	root.AddCommand(
		newLogCmd(app),
		newLogsCmd(app),
		newStatsCmd(app),
		newMonthsCmd(app),
	)

	return root
}
