package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/model"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

type formKind int

const (
	formNone formKind = iota
	formSetup
	formReset
	formNew
)

// formValues backs the huh fields. It lives behind a pointer so the bound
// values survive App being copied through Update.
type formValues struct {
	start   string
	steps   string
	rate    string
	theme   string
	confirm bool
}

func (v *formValues) params() (model.Params, error) {
	return config.ParseParams(v.start, v.steps, v.rate)
}

func (v *formValues) fill(p model.Params, themeName string) {
	v.start = strconv.FormatFloat(p.StartingAmount, 'f', -1, 64)
	v.steps = strconv.Itoa(p.StepCount)
	v.rate = strconv.FormatFloat(p.GrowthRate*100, 'f', -1, 64)
	v.theme = themeName
	v.confirm = false
}

func validateAmount(s string) error {
	_, err := config.ParseParams(s, "1", "0")
	return err
}

func validateSteps(s string) error {
	_, err := config.ParseParams("1", s, "0")
	return err
}

func validateRate(s string) error {
	_, err := config.ParseParams("1", "1", s)
	return err
}

func paramFields(v *formValues) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Starting amount").
			Description("Equity at the start of step 1, in dollars.").
			Value(&v.start).
			Validate(validateAmount),
		huh.NewInput().
			Title("Number of steps").
			Value(&v.steps).
			Validate(validateSteps),
		huh.NewInput().
			Title("Growth per step (%)").
			Description("Profit target of each step relative to its starting equity.").
			Value(&v.rate).
			Validate(validateRate),
	}
}

func (a *App) openForm(kind formKind) {
	v := a.formVals
	v.fill(a.cfg.Params(), a.cfg.Appearance.Theme)

	var form *huh.Form
	switch kind {
	case formSetup:
		fields := append([]huh.Field{
			huh.NewNote().
				Title("Welcome to compound").
				Description("Plan a compounding trading challenge and track it step by step.\nYou can change these later in Settings or with `compound setup`."),
		}, paramFields(v)...)
		fields = append(fields, huh.NewSelect[string]().
			Title("Color theme").
			Options(huh.NewOptions(theme.Names()...)...).
			Value(&v.theme))
		form = huh.NewForm(huh.NewGroup(fields...))

	case formReset:
		form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Reset the challenge?").
				Description(a.resetDescription()).
				Affirmative("Reset").
				Negative("Cancel").
				Value(&v.confirm),
		))

	case formNew:
		fields := append([]huh.Field{
			huh.NewNote().
				Title("New challenge").
				Description("Replaces the current challenge and all of its progress."),
		}, paramFields(v)...)
		form = huh.NewForm(huh.NewGroup(fields...))

	default:
		return
	}

	form = form.WithTheme(huh.ThemeBase16()).WithShowHelp(true)
	if a.width > 0 {
		form = form.WithWidth(min(a.width, 70))
	}
	a.form = form
	a.formKind = kind
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
}

func (a App) resetDescription() string {
	return strconv.Itoa(a.summary.CompletedSteps) + " completed steps and all notes will be cleared."
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.closeForm()
		return a.submitForm(kind)
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm acts on a completed form.
func (a App) submitForm(kind formKind) (tea.Model, tea.Cmd) {
	v := a.formVals

	switch kind {
	case formReset:
		if !v.confirm {
			return a, nil
		}
		return a.runAction(a.tracker.Reset, "Challenge has been reset")

	case formSetup, formNew:
		p, err := v.params()
		if err != nil {
			return a.showToast(err.Error(), true)
		}
		a.cfg.SetParams(p)
		if kind == formSetup {
			a.cfg.Appearance.Theme = v.theme
			theme.SetActive(v.theme)
		}
		if err := a.saveConfig(a.cfg); err != nil {
			a.log.Warn("saving config", zap.Error(err))
		}

		if kind == formSetup && p == a.tracker.Params() {
			return a.showToast("Settings saved", false)
		}
		notice := "New challenge: " + strconv.Itoa(p.StepCount) + " steps from " + cli.FormatMoney(p.StartingAmount)
		tr := a.tracker
		a.steps.cursor = 0
		return a.runAction(func() error { return tr.Restart(p) }, notice)
	}
	return a, nil
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
