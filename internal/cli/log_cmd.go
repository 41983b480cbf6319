package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tasklog/internal/cli/formatter"
	"tasklog/internal/core"
	"tasklog/internal/log"
)

func newLogCmd(app *App) *cobra.Command {
	var in core.TaskInput

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a task",
		Long: `Log a task. Missing fields are prompted for on a terminal.
The date is DD-MM-YYYY and defaults to today; the type is Administrative,
Marketing, Product or their menu number 1-3.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				if err := app.fillTaskInput(cmd.OutOrStdout(), &in, cmd.Flags().Changed("date")); err != nil {
					return err
				}
			}
			return app.saveTask(cmd, in)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "collaborator name")
	cmd.Flags().StringVar(&in.Task, "task", "", "task description")
	cmd.Flags().StringVar(&in.Date, "date", "", "task date DD-MM-YYYY (default today)")
	cmd.Flags().StringVar(&in.Hours, "hours", "", "hours worked, e.g. 1.5")
	cmd.Flags().StringVar(&in.Type, "type", "", "task type: Administrative|Marketing|Product or 1-3")

	return cmd
}

// saveTask validates the input and appends it to the store.
func (a *App) saveTask(cmd *cobra.Command, in core.TaskInput) error {
	record, err := in.Record(a.Now())
	if err != nil {
		return err
	}

	ref, err := a.Store.Append(cmd.Context(), record)
	if err != nil {
		return fmt.Errorf("failed to log task: %w", err)
	}

	a.cliLogger().Debug("Task logged", append(log.NewFields().
		WithOperation(log.OpAppend).
		WithTask(record.Name, string(record.Type), record.DateText(), record.Hours).
		ToSlice(), log.FieldSheetsRef, ref)...)
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Task logged successfully."))
	return nil
}

// fillTaskInput prompts for every field of in that is still empty. An empty
// date is only prompted for when dateSet is false, since blank means today.
func (a *App) fillTaskInput(out io.Writer, in *core.TaskInput, dateSet bool) error {
	var err error
	if strings.TrimSpace(in.Name) == "" {
		if in.Name, err = a.askText(out, "Enter your name", "", nonEmpty(core.ErrEmptyName, "name")); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Task) == "" {
		if in.Task, err = a.askText(out, "Enter the task", "", nonEmpty(core.ErrEmptyTask, "task")); err != nil {
			return err
		}
	}
	if !dateSet && in.Date == "" {
		validDate := func(s string) error {
			_, err := core.ResolveDate(s, a.Now())
			return err
		}
		if in.Date, err = a.askText(out, "Enter the date (DD-MM-YYYY) or press Enter to use today's date", core.DateOf(a.Now()).String(), validDate); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Hours) == "" {
		validHours := func(s string) error {
			_, err := core.ParseHours(s)
			return err
		}
		if in.Hours, err = a.askText(out, "Enter hours worked", "1.5", validHours); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Type) == "" {
		if in.Type, err = a.askTaskType(out); err != nil {
			return err
		}
	}
	return nil
}

// askText prompts until validate accepts the answer, printing the reason for
// each rejection.
func (a *App) askText(out io.Writer, title, placeholder string, validate func(string) error) (string, error) {
	for {
		answer, err := a.Prompt.Input(title, placeholder, validate)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			fmt.Fprintln(out, formatter.Warning(invalidInputMessage(err, answer)))
			continue
		}
		return answer, nil
	}
}

func (a *App) askTaskType(out io.Writer) (string, error) {
	options := make([]Option, 0, 3)
	for i, t := range core.TaskTypes() {
		options = append(options, Option{Label: fmt.Sprintf("%d. %s", i+1, t), Value: strconv.Itoa(i + 1)})
	}
	for {
		choice, err := a.Prompt.Select("Select Task Type", options)
		if err != nil {
			return "", err
		}
		if _, err := core.ParseTaskType(choice); err != nil {
			fmt.Fprintln(out, formatter.Warning(invalidInputMessage(err, choice)))
			continue
		}
		return choice, nil
	}
}

func nonEmpty(sentinel error, field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &core.ValidationError{Field: field, Err: sentinel}
		}
		return nil
	}
}

// invalidInputMessage turns a validation error into the re-prompt hint.
func invalidInputMessage(err error, answer string) string {
	switch {
	case errors.Is(err, core.ErrEmptyName):
		return "Name cannot be empty. Please enter a valid name."
	case errors.Is(err, core.ErrEmptyTask):
		return "Task description cannot be empty. Please enter a valid task."
	case errors.Is(err, core.ErrInvalidDate):
		return "Invalid date format. Please use DD-MM-YYYY."
	case errors.Is(err, core.ErrInvalidHours):
		normalized := strings.ReplaceAll(strings.TrimSpace(answer), ",", ".")
		if _, perr := strconv.ParseFloat(normalized, 64); perr == nil {
			return "Hours must be greater than 0."
		}
		return "Invalid input for hours. Please enter a valid number."
	case errors.Is(err, core.ErrInvalidType):
		return "Invalid choice. Please enter 1, 2, or 3."
	default:
		return err.Error()
	}
}
