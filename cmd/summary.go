package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Challenge progress and metrics",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := s.tracker.Summary()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("TRADING CHALLENGE  %s", tagline(sum))))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(summaryTable(sum)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderProgressBar(sum.ProgressPercent, 40))
	for _, line := range strings.Split(cli.RenderStepBlocks(sum.CompletedSteps, sum.TotalSteps, 10), "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Equity path  %s\n", cli.RenderSparkline(equityPath(s.tracker.Sequence())))
	fmt.Fprintln(out)

	if sum.Complete() {
		fmt.Fprintln(out, "  "+cli.SuccessStyle.Render("Challenge completed"))
	} else if sum.Next != nil {
		n := sum.Next
		fmt.Fprintf(out, "  Next: Step %s  %s -> target +%s -> %s\n",
			cli.FormatStep(n.Index), cli.FormatMoney(n.Equity), cli.FormatMoney(n.ProfitTarget), cli.FormatMoney(n.After))
	}
	fmt.Fprintln(out)
	return nil
}

func summaryTable(sum model.Summary) cli.Table {
	return cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Starting Equity", cli.FormatMoney(sum.StartingEquity)},
			{"Current Equity", cli.FormatMoney(sum.CurrentEquity)},
			{"Goal", cli.FormatMoney(sum.GoalAmount)},
			{"---"},
			{"Total Profit", fmt.Sprintf("%s (%s)", cli.FormatMoney(sum.TotalProfit), cli.FormatSignedPercent(sum.ProfitPercent))},
			{"Remaining", cli.FormatMoney(sum.RemainingAmount)},
			{"---"},
			{"Completion", fmt.Sprintf("%d/%d (%s)", sum.CompletedSteps, sum.TotalSteps, cli.FormatPercent(sum.CompletionPercent))},
			{"Goal Progress", cli.FormatPercent(sum.ProgressPercent)},
			{"Avg Growth/Step", cli.FormatPercent(sum.AvgStepProfit)},
			{"Est. Steps Left", cli.FormatEstimate(sum.EstStepsRemaining, sum.HasEstimate)},
		},
	}
}

func equityPath(seq model.Sequence) []float64 {
	values := make([]float64, len(seq))
	for i, step := range seq {
		values[i] = step.Equity
	}
	return values
}

// tagline reads "30 steps from $20.00 to $3,956.27".
func tagline(sum model.Summary) string {
	return fmt.Sprintf("%d steps from %s to %s",
		sum.TotalSteps, cli.FormatMoney(sum.StartingEquity), cli.FormatMoney(sum.GoalAmount))
}
