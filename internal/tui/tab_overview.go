package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/tui/components"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: Metric cards
	profitColor := t.Green
	if s.TotalProfit < 0 {
		profitColor = t.Red
	}
	metrics := []components.Metric{
		{Label: "Current Equity", Value: cli.FormatMoney(s.CurrentEquity), Delta: "goal " + cli.FormatMoneyCompact(s.GoalAmount), Color: t.AccentBright},
		{Label: "Total Profit", Value: cli.FormatMoney(s.TotalProfit), Delta: cli.FormatSignedPercent(s.ProfitPercent), Color: profitColor},
		{Label: "Completion", Value: fmt.Sprintf("%d/%d", s.CompletedSteps, s.TotalSteps), Delta: cli.FormatPercent(s.CompletionPercent)},
		{Label: "Goal Progress", Value: cli.FormatPercent(s.ProgressPercent), Delta: cli.FormatMoneyCompact(s.RemainingAmount) + " to go"},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: Summary + next step
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Summary", a.summaryBody(), cw))
		b.WriteString("\n")
		b.WriteString(components.FocusCard("Next Step", a.nextStepBody(), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Summary", a.summaryBody(), halves[0]),
			components.FocusCard("Next Step", a.nextStepBody(), halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 3: Progress bar + step grid
	innerW := components.CardInnerWidth(cw)
	var prog strings.Builder
	prog.WriteString(components.ProgressBar(s.ProgressPercent/100, max(innerW-8, 10)))
	prog.WriteString("\n\n")
	prog.WriteString(components.StepGrid(s.CompletedSteps, s.TotalSteps, 10))
	b.WriteString(components.ContentCard("Progress", prog.String(), cw))

	return b.String()
}

func (a App) summaryBody() string {
	t := theme.Active
	s := a.summary

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	arrowStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(valueStyle.Render(cli.FormatMoney(s.StartingEquity)))
	b.WriteString(arrowStyle.Render(" → "))
	b.WriteString(accentStyle.Render(cli.FormatMoney(s.CurrentEquity)))
	b.WriteString(arrowStyle.Render(" → "))
	b.WriteString(valueStyle.Render(cli.FormatMoney(s.GoalAmount)))
	b.WriteString("\n")

	rows := []struct{ label, value string }{
		{"Avg growth/step", cli.FormatPercent(s.AvgStepProfit)},
		{"Remaining", cli.FormatMoney(s.RemainingAmount)},
		{"Est. steps left", cli.FormatEstimate(s.EstStepsRemaining, s.HasEstimate)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (a App) nextStepBody() string {
	t := theme.Active
	next := a.summary.Next

	if next == nil {
		doneStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return doneStyle.Render("Challenge completed") + "\n" +
			mutedStyle.Render("Every step is achieved. Press N to start a new one.")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	stepStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	targetStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	var b strings.Builder
	b.WriteString(stepStyle.Render("Step " + cli.FormatStep(next.Index)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", "Equity")))
	b.WriteString(valueStyle.Render(cli.FormatMoney(next.Equity)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", "Profit target")))
	b.WriteString(targetStyle.Render("+" + cli.FormatMoney(next.ProfitTarget)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", "After success")))
	b.WriteString(valueStyle.Render(cli.FormatMoney(next.After)))
	return b.String()
}
