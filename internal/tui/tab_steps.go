package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/model"
	"github.com/theirongolddev/compound/internal/tui/components"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

// stepsState holds the steps tab state.
type stepsState struct {
	cursor  int
	offset  int // scroll offset for the list
	editing bool
	input   textinput.Model
}

func (s *stepsState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *stepsState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func newNotesInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Add notes about this trade..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.SetValue(value)
	return ti
}

// updateStepsKey handles keys owned by the steps tab. ok is false when the
// key should fall through to the global bindings.
func (a App) updateStepsKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.seq)

	switch key {
	case "j", "down":
		a.steps.move(1, n)
	case "k", "up":
		a.steps.move(-1, n)
	case "pgdown", "ctrl+d":
		a.steps.move(10, n)
	case "pgup", "ctrl+u":
		a.steps.move(-10, n)
	case "g", "home":
		a.steps.cursor = 0
	case "G", "end":
		a.steps.cursor = n - 1
	case " ", "space":
		if a.busy || n == 0 {
			return a, nil, true
		}
		idx := a.steps.cursor
		achieved := !a.seq[idx].Achieved
		notice := "Step " + cli.FormatStep(idx) + " marked as completed!"
		if !achieved {
			notice = "Step " + cli.FormatStep(idx) + " marked as not completed"
		}
		tr := a.tracker
		m, cmd := a.runAction(func() error { return tr.SetAchieved(idx, achieved) }, notice)
		return m, cmd, true
	case "n", "enter":
		if n == 0 {
			return a, nil, true
		}
		a.steps.editing = true
		a.steps.input = newNotesInput(a.seq[a.steps.cursor].Notes)
		a.steps.input.Focus()
		return a, a.steps.input.Cursor.BlinkCmd(), true
	default:
		return a, nil, false
	}
	a.steps.clamp(n)
	return a, nil, true
}

func (a App) updateNotesInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.steps.editing = false
		idx := a.steps.cursor
		notes := strings.TrimSpace(a.steps.input.Value())
		if idx >= len(a.seq) || notes == a.seq[idx].Notes {
			return a, nil
		}
		tr := a.tracker
		return a.runAction(func() error { return tr.SetNotes(idx, notes) },
			"Notes updated for Step "+cli.FormatStep(idx))
	case "esc":
		a.steps.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.steps.input, cmd = a.steps.input.Update(msg)
	return a, cmd
}

func (a App) renderStepsTab(cw, h int) string {
	t := theme.Active
	if len(a.seq) == 0 {
		return components.ContentCard("Steps", lipgloss.NewStyle().Foreground(t.TextMuted).Render("No steps"), cw)
	}

	if a.isCompactLayout() {
		list := a.renderStepList(cw, h-4)
		return list + "\n" + a.renderNotesLine(cw)
	}

	leftW := cw * 3 / 5
	rightW := cw - leftW
	list := a.renderStepList(leftW, h)
	detail := components.ContentCard("Step "+cli.FormatStep(a.steps.cursor), a.stepDetailBody(rightW), rightW)
	return components.CardRow([]string{list, detail})
}

func (a App) renderStepList(w, h int) string {
	t := theme.Active
	ss := a.steps
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	const numW, moneyW, markW = 4, 12, 4
	notesW := innerW - numW - 3*moneyW - markW - 5
	showNotes := notesW >= 8

	row := func(num, equity, target, after, mark, notes string) string {
		s := fmt.Sprintf("%-*s %*s %*s %*s %-*s", numW, num, moneyW, equity, moneyW, target, moneyW, after, markW, mark)
		if showNotes {
			s += " " + fmt.Sprintf("%-*s", notesW, cli.Truncate(notes, notesW))
		}
		return s
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(row("#", "Equity", "Target", "After", "Done", "Notes")))
	body.WriteString("\n")

	visible := max(h-5, 3) // card border (2) + title (1) + header (1) + slack
	offset := ss.offset
	if ss.cursor < offset {
		offset = ss.cursor
	}
	if ss.cursor >= offset+visible {
		offset = ss.cursor - visible + 1
	}
	end := min(offset+visible, len(a.seq))

	for i := offset; i < end; i++ {
		step := a.seq[i]
		mark := "·"
		if step.Achieved {
			mark = "✓"
		}
		notes := step.Notes
		if notes == "" {
			notes = "No notes"
		}
		line := row(cli.FormatStep(i), cli.FormatMoney(step.Equity), cli.FormatMoney(step.ProfitTarget),
			cli.FormatMoney(step.After()), mark, notes)

		switch {
		case i == ss.cursor:
			body.WriteString(selectedStyle.Render(line))
		case step.Achieved:
			body.WriteString(doneStyle.Render(line))
		case step.Notes == "":
			body.WriteString(mutedStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Steps (%d/%d completed)", a.summary.CompletedSteps, len(a.seq))
	return components.ContentCard(title, body.String(), w)
}

func (a App) stepDetailBody(w int) string {
	t := theme.Active
	step := a.seq[a.steps.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	status := pendingStyle.Render("Pending")
	if step.Achieved {
		status = doneStyle.Render("Completed")
	}

	var b strings.Builder
	for _, r := range []struct{ label, value string }{
		{"Equity", cli.FormatMoney(step.Equity)},
		{"Profit target", cli.FormatMoney(step.ProfitTarget)},
		{"After success", cli.FormatMoney(step.After())},
		{"Growth", cli.FormatPercent(growthPercent(step))},
	} {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s ", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s ", "Status")))
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Notes"))
	b.WriteString("\n")

	switch {
	case a.steps.editing:
		b.WriteString(a.steps.input.View())
	case step.Notes == "":
		b.WriteString(labelStyle.Render("No notes"))
	default:
		b.WriteString(valueStyle.Width(components.CardInnerWidth(w)).Render(step.Notes))
	}
	return b.String()
}

func (a App) renderNotesLine(cw int) string {
	t := theme.Active
	step := a.seq[a.steps.cursor]
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := labelStyle.Render("No notes")
	switch {
	case a.steps.editing:
		body = a.steps.input.View()
	case step.Notes != "":
		body = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(
			cli.Truncate(step.Notes, components.CardInnerWidth(cw)))
	}
	return components.ContentCard("Notes for Step "+cli.FormatStep(a.steps.cursor), body, cw)
}

func growthPercent(step model.Step) float64 {
	if step.Equity == 0 {
		return 0
	}
	return step.ProfitTarget / step.Equity * 100
}
