package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/compound/internal/tui/theme"
)

// ColorForPct returns the bar color for a fraction of the goal reached.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.GreenBright
	case pct >= 0.5:
		return t.AccentBright
	case pct >= 0.1:
		return t.Accent
	default:
		return t.Cyan
	}
}

// ProgressBar renders a fraction (0..1) as a bar followed by its percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active

	if pct < 0 || pct != pct {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 4 {
		width = 4
	}

	color := ColorForPct(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.1f%%", pct*100))
}

// StepGrid renders one block per step, perRow to a line; the first
// completed blocks are filled.
func StepGrid(completed, total, perRow int) string {
	if total <= 0 || perRow <= 0 {
		return ""
	}
	t := theme.Active

	doneStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	nextStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	todoStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	gapStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i > 0 && i%perRow == 0:
			b.WriteString("\n")
		case i > 0:
			b.WriteString(gapStyle.Render(" "))
		}
		switch {
		case i < completed:
			b.WriteString(doneStyle.Render("■"))
		case i == completed:
			b.WriteString(nextStyle.Render("▣"))
		default:
			b.WriteString(todoStyle.Render("□"))
		}
	}
	return b.String()
}
