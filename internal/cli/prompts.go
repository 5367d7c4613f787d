package cli

import (
	"fmt"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// neonHuhTheme returns the huh theme matching the formatter palette.
func neonHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks a yes/no question. Without a terminal it answers no.
func confirm(app *App, question string) (bool, error) {
	if !app.interactive() {
		return false, nil
	}
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(&ok),
	)).WithTheme(neonHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// moveTargetOptions lists the columns cards of deleted may move to.
func moveTargetOptions(d service.BoardDetails, deleted string) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, c := range d.Columns {
		if c.ID == deleted {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d)", c.Name, len(c.Cards)), c.ID))
	}
	return opts
}

// pickMoveTarget asks where the cards of a deleted column should go.
func pickMoveTarget(app *App, d service.BoardDetails, deleted string, count int) (string, error) {
	opts := moveTargetOptions(d, deleted)
	if !app.interactive() || len(opts) == 0 {
		return "", nil
	}
	var target string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Move %s to", formatter.Plural(count, "card"))).
			Options(opts...).
			Value(&target),
	)).WithTheme(neonHuhTheme()).WithShowHelp(false).Run()
	return target, err
}

// cardForm collects the title and description of a new card.
func cardForm(title, description *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(title).
			Validate(validateCardTitle),
		huh.NewText().
			Title("Description").
			Value(description),
	)).WithTheme(neonHuhTheme()).WithShowHelp(false)
}

func validateCardTitle(s string) error {
	_, err := domain.NewCardContent(s, "")
	return err
}
