package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/compound/internal/tui/theme"
)

// Toast is a short-lived notice shown on the right of the status bar.
type Toast struct {
	Text  string
	IsErr bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, an
// optional activity indicator and the current toast on the right.
func RenderStatusBar(width int, hint, activity string, toast Toast) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	okStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.SurfaceHover).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.SurfaceHover).Bold(true)

	left := barStyle.Render(" " + hint)

	var right string
	if activity != "" {
		right = activity + barStyle.Render(" ")
	}
	if toast.Text != "" {
		if toast.IsErr {
			right += errStyle.Render("✗ " + toast.Text)
		} else {
			right += okStyle.Render("✓ " + toast.Text)
		}
		right += barStyle.Render(" ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + barStyle.Render(strings.Repeat(" ", padding)) + right
}
