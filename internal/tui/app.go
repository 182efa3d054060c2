// Package tui provides the interactive Bubble Tea dashboard for compound.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/model"
	"github.com/theirongolddev/compound/internal/tracker"
	"github.com/theirongolddev/compound/internal/tui/components"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

const (
	tabOverview = iota
	tabSteps
	tabChart
	tabSettings
)

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
	toastDuration    = 3 * time.Second
)

// Options configures NewApp.
type Options struct {
	Config config.Config
	// SaveConfig persists settings changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
	// FirstRun opens the setup form before the dashboard.
	FirstRun bool
	// StoreInfo describes where the challenge is persisted, for display.
	StoreInfo string
	Logger    *zap.Logger
}

// actionDoneMsg reports the outcome of a tracker mutation run off the UI loop.
type actionDoneMsg struct {
	notice string
	err    error
}

// toastExpiredMsg clears the toast with the matching id.
type toastExpiredMsg struct{ id int }

// App is the root Bubble Tea model.
type App struct {
	tracker    *tracker.Tracker
	log        *zap.Logger
	cfg        config.Config
	saveConfig func(config.Config) error
	storeInfo  string

	// Snapshot of tracker state, refreshed after every action
	seq     model.Sequence
	summary model.Summary

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	steps    stepsState
	settings settingsState

	// Modal huh form (setup, reset confirm, new challenge)
	form     *huh.Form
	formKind formKind
	formVals *formValues

	busy    bool
	spinner spinner.Model

	toast   components.Toast
	toastID int
}

// NewApp creates a new TUI app model around tr.
func NewApp(tr *tracker.Tracker, opts Options) App {
	if opts.SaveConfig == nil {
		opts.SaveConfig = config.Save
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	theme.SetActive(opts.Config.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.SurfaceHover)

	a := App{
		tracker:    tr,
		log:        opts.Logger,
		cfg:        opts.Config,
		saveConfig: opts.SaveConfig,
		storeInfo:  opts.StoreInfo,
		spinner:    sp,
		formVals:   &formValues{},
	}
	a.refresh()
	if a.summary.Next != nil {
		a.steps.cursor = a.summary.Next.Index
	}
	if opts.FirstRun {
		a.openForm(formSetup)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// refresh copies the tracker's current state into the view snapshot.
func (a *App) refresh() {
	a.seq = a.tracker.Sequence()
	summary, err := a.tracker.Summary()
	if err != nil {
		a.log.Error("summarizing challenge", zap.Error(err))
		summary = model.Summary{}
	}
	a.summary = summary
	a.steps.clamp(len(a.seq))
}

// runAction runs fn on a command goroutine and reports back with
// actionDoneMsg. notice is shown on success.
func (a App) runAction(fn func() error, notice string) (App, tea.Cmd) {
	a.busy = true
	return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
		return actionDoneMsg{notice: notice, err: fn()}
	})
}

func (a App) showToast(text string, isErr bool) (App, tea.Cmd) {
	a.toastID++
	a.toast = components.Toast{Text: text, IsErr: isErr}
	id := a.toastID
	return a, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 70))
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case actionDoneMsg:
		a.busy = false
		a.refresh()
		if msg.err != nil {
			a.log.Debug("action rejected", zap.Error(msg.err))
			return a.showToast(msg.err.Error(), true)
		}
		if msg.notice != "" {
			return a.showToast(msg.notice, false)
		}
		return a, nil

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = components.Toast{}
		}
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Forms intercept all keys
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			return a, nil
		}
		return a.updateForm(msg)
	}

	if a.activeTab == tabSteps && a.steps.editing {
		return a.updateNotesInput(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabSteps:
		if m, cmd, ok := a.updateStepsKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "R":
		a.openForm(formReset)
		return a, a.form.Init()
	case "N":
		a.openForm(formNew)
		return a, a.form.Init()
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabSteps && !a.steps.editing {
			a.steps.move(-1, len(a.seq))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabSteps && !a.steps.editing {
			a.steps.move(1, len(a.seq))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  compound needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o s c x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through steps"},
			{"g G", "First / Last step"},
		}},
		{"Steps", []struct{ key, desc string }{
			{"Space", "Toggle completed"},
			{"n Enter", "Edit notes"},
			{"Esc", "Cancel editing"},
		}},
		{"Challenge", []struct{ key, desc string }{
			{"N", "Start a new challenge"},
			{"R", "Reset progress"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + tagline
	taglineStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	tagline := taglineStyle.Render(" ") + accentStyle.Render("◈ compound") + taglineStyle.Render("  "+a.tagline())
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.PlaceHorizontal(w, lipgloss.Left, tagline, lipgloss.WithWhitespaceBackground(t.Surface))

	// 2. Status bar
	activity := ""
	if a.busy {
		activity = a.spinner.View()
	}
	statusBar := components.RenderStatusBar(w, a.statusHint(), activity, a.toast)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabSteps:
		content = a.renderStepsTab(cw, contentH)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tagline summarizes the challenge: "30 steps from $20.00 to $3,956.27".
func (a App) tagline() string {
	if len(a.seq) == 0 {
		return ""
	}
	return fmt.Sprintf("%d steps from %s to %s",
		len(a.seq), cli.FormatMoney(a.summary.StartingEquity), cli.FormatMoney(a.summary.GoalAmount))
}

func (a App) statusHint() string {
	switch {
	case a.activeTab == tabSteps && a.steps.editing:
		return "[Enter]save  [Esc]cancel"
	case a.activeTab == tabSteps:
		return "[Space]toggle  [n]otes  [?]help  [q]uit"
	case a.activeTab == tabSettings && a.settings.editing:
		return "[Enter]save  [Esc]cancel"
	default:
		return "[N]ew  [R]eset  [?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
