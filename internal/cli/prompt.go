package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"tasklog/internal/cli/formatter"
)

// ErrAborted is returned by a Prompter when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Option is one entry of a selection prompt.
type Option struct {
	Label string
	Value string
}

// Prompter asks the user for input. Validation in Input is advisory: callers
// re-check the answer and re-prompt with a reason.
type Prompter interface {
	Input(title, placeholder string, validate func(string) error) (string, error)
	Select(title string, options []Option) (string, error)
}

// HuhPrompter runs each prompt as a single-field huh form.
type HuhPrompter struct{}

func NewHuhPrompter() *HuhPrompter { return &HuhPrompter{} }

func (HuhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	if err := runForm(input); err != nil {
		return "", err
	}
	return value, nil
}

func (HuhPrompter) Select(title string, options []Option) (string, error) {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	var value string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value)
	if err := runForm(sel); err != nil {
		return "", err
	}
	return value, nil
}

func runForm(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(tasklogHuhTheme()).
		WithShowHelp(false).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// tasklogHuhTheme returns a huh theme matching the formatter palette.
func tasklogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
