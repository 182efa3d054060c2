package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/tui/components"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

func (a App) renderChartTab(cw, h int) string {
	t := theme.Active
	s := a.summary
	n := len(a.seq)
	if n == 0 {
		return ""
	}

	equity := make([]float64, n)
	targets := make([]float64, n)
	labels := make([]string, n)
	for i, step := range a.seq {
		equity[i] = step.Equity
		targets[i] = step.ProfitTarget
		labels[i] = strconv.Itoa(i + 1)
	}

	chartH := max(h-10, 6)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	title := fmt.Sprintf("Equity Path (current %s / goal %s)", cli.FormatMoney(s.CurrentEquity), cli.FormatMoney(s.GoalAmount))
	b.WriteString(components.ContentCard(title,
		components.EquityChart(equity, s.CompletedSteps, labels, innerW, chartH), cw))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var targetsBody strings.Builder
	targetsBody.WriteString(components.Sparkline(targets, t.Green))
	targetsBody.WriteString("\n")
	targetsBody.WriteString(labelStyle.Render("first "))
	targetsBody.WriteString(valueStyle.Render(cli.FormatMoney(targets[0])))
	targetsBody.WriteString(labelStyle.Render("   last "))
	targetsBody.WriteString(valueStyle.Render(cli.FormatMoney(targets[n-1])))
	b.WriteString(components.ContentCard("Profit Targets", targetsBody.String(), cw))

	return b.String()
}
