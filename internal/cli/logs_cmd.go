package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasklog/internal/cli/formatter"
)

func newLogsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show every logged task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.viewLogs(cmd)
		},
	}
}

func (a *App) viewLogs(cmd *cobra.Command) error {
	records, err := a.Store.ReadAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("error viewing logs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No logs available to view.")
		return nil
	}
	fmt.Fprint(out, formatter.RenderRecords(records))
	fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d tasks", len(records))))
	return nil
}
