package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tasklog/internal/cli/formatter"
	"tasklog/internal/core"
	"tasklog/internal/services"
)

const cancelChoice = "0"

func newStatsCmd(app *App) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show hours per task type and per collaborator for a month",
		Long: `Show hours per task type and per collaborator for one of the last
twelve months. Without --month the month is chosen from a menu on a terminal.
--year defaults to the year that month has inside the window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == 0 {
				if !app.interactive() {
					return errors.New("--month is required when not running on a terminal")
				}
				return app.interactiveStats(cmd)
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d: must be between 1 and 12", month)
			}
			return app.statsForMonth(cmd, time.Month(month), year)
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month number 1-12")
	cmd.Flags().IntVar(&year, "year", 0, "four digit year")

	return cmd
}

func newMonthsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the twelve months statistics can be shown for",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, p := range core.MonthWindow(app.Now()) {
				fmt.Fprintf(out, "%2d. %s\n", i+1, p)
			}
			return nil
		},
	}
}

func (a *App) statsForMonth(cmd *cobra.Command, month time.Month, year int) error {
	out := cmd.OutOrStdout()
	if year == 0 {
		for _, p := range core.MonthWindow(a.Now()) {
			if p.Month == month {
				year = p.Year
			}
		}
	}

	stats, err := a.Stats.ForPeriod(cmd.Context(), month, year)
	switch {
	case errors.Is(err, services.ErrNoRecords):
		fmt.Fprintln(out, "No logs found. Please log a task first.")
		return nil
	case errors.Is(err, services.ErrEmptySelection):
		fmt.Fprintf(out, "No records found for %s.\n", month)
		return nil
	case err != nil:
		return err
	}
	renderStats(out, stats)
	return nil
}

// interactiveStats reads the store once, then asks for a month until one
// with records is chosen or the user cancels.
func (a *App) interactiveStats(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	snap, err := a.Stats.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	if len(snap.Records) == 0 {
		fmt.Fprintln(out, "No logs found. Please log a task first.")
		return nil
	}

	options := make([]Option, 0, len(snap.Window)+1)
	for i, p := range snap.Window {
		options = append(options, Option{Label: fmt.Sprintf("%d. %s", i+1, p), Value: strconv.Itoa(i + 1)})
	}
	options = append(options, Option{Label: "Cancel", Value: cancelChoice})

	for {
		choice, err := a.Prompt.Select("Filter by Month", options)
		if errors.Is(err, ErrAborted) || choice == cancelChoice {
			return nil
		}
		if err != nil {
			return err
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(snap.Window) {
			fmt.Fprintln(out, formatter.Warning("Invalid choice. Please select a valid month."))
			continue
		}
		period := snap.Window[idx-1]

		stats, err := a.Stats.Compute(snap.Records, period)
		if errors.Is(err, services.ErrEmptySelection) {
			fmt.Fprintf(out, "No records found for %s. Please select another month.\n", period.MonthName())
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nRecords found for %s.\n\n", period.MonthName())
		renderStats(out, stats)
		return nil
	}
}

func renderStats(out io.Writer, s core.Stats) {
	month := s.Period.MonthName()
	fmt.Fprint(out, formatter.RenderHours("Hours per Task Type for "+month, "Task Type", "Hours", s.ByType))
	fmt.Fprintln(out)
	fmt.Fprint(out, formatter.RenderHours("Hours by Collaborator for "+month, "Collaborator", "Hours", s.ByCollaborator))
	fmt.Fprintf(out, "\n%s\n", formatter.Bold(fmt.Sprintf("Total Hours for %s: %s", month, core.FormatHours(s.Total))))
}
