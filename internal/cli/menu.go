package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tasklog/internal/cli/formatter"
	"tasklog/internal/core"
	"tasklog/internal/log"
	"tasklog/internal/sheets"
)

const welcomeText = `Welcome to the Task Logger Program!
Managers can track team tasks, hours, and view detailed stats by member or month.
Team members can log tasks in under 30 seconds with our easy interface.
For Managers: Get real-time stats to monitor team performance and contributions.
For Team Members: Quickly log tasks in the 'Log Task' section in no time!`

var menuOptions = []Option{
	{Label: "1. Log Task", Value: "1"},
	{Label: "2. View Logs", Value: "2"},
	{Label: "3. View Statistics", Value: "3"},
	{Label: "4. Exit", Value: "4"},
}

// runMenu is the interactive main loop. Failures of a single action are
// reported and the menu is shown again.
func (a *App) runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.Header("Task Logger"))
	fmt.Fprintln(out, welcomeText)

	a.checkHeaders(cmd)

	for {
		fmt.Fprintln(out)
		choice, err := a.Prompt.Select("Options", menuOptions)
		if errors.Is(err, ErrAborted) {
			choice = "4"
		} else if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			var in core.TaskInput
			actionErr = a.fillTaskInput(out, &in, false)
			if actionErr == nil {
				actionErr = a.saveTask(cmd, in)
			}
		case "2":
			actionErr = a.viewLogs(cmd)
		case "3":
			actionErr = a.interactiveStats(cmd)
		case "4":
			fmt.Fprintln(out, "Exiting program.")
			return nil
		default:
			fmt.Fprintln(out, formatter.Warning("Invalid choice. Please try again."))
			continue
		}

		if actionErr != nil && !errors.Is(actionErr, ErrAborted) {
			a.cliLogger().Debug("Menu action failed", log.FieldError, actionErr)
			fmt.Fprintln(out, formatter.Failure("Error: "+actionErr.Error()))
		}
	}
}

func (a *App) checkHeaders(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	status, err := a.Store.EnsureHeaders(cmd.Context())
	if err != nil {
		fmt.Fprintln(out, formatter.Failure("Could not check sheet headers: "+err.Error()))
		return
	}
	a.cliLogger().Debug("Header check", log.FieldHeaderState, status.String())
	switch status {
	case sheets.HeadersAdded:
		fmt.Fprintln(out, "Headers added to Google Sheets.")
	case sheets.HeadersMismatch:
		fmt.Fprintln(out, formatter.Warning("Warning: The headers in the sheet don't match expected format."))
	}
}
