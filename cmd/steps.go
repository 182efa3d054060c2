package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
)

var stepsPending bool

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List every step with its target and notes",
	Args:  cobra.NoArgs,
	RunE:  runSteps,
}

func init() {
	stepsCmd.Flags().BoolVar(&stepsPending, "pending", false, "Only show steps not yet completed")
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	seq := s.tracker.Sequence()
	sum, err := s.tracker.Summary()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(seq))
	for i, step := range seq {
		if stepsPending && step.Achieved {
			continue
		}
		done := ""
		if step.Achieved {
			done = "✓"
		}
		notes := step.Notes
		if notes == "" {
			notes = cli.Muted("No notes")
		} else {
			notes = cli.Truncate(notes, 40)
		}
		rows = append(rows, []string{
			cli.FormatStep(i),
			cli.FormatMoney(step.Equity),
			cli.FormatMoney(step.ProfitTarget),
			cli.FormatMoney(step.After()),
			done,
			notes,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("STEPS  %d/%d completed", sum.CompletedSteps, sum.TotalSteps)))
	fmt.Fprintln(out)

	if len(rows) == 0 {
		fmt.Fprintln(out, "  Every step is completed.")
		fmt.Fprintln(out)
		return nil
	}

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"#", "Equity", "Target", "After", "Done", "Notes"},
		Rows:    rows,
	}))
	return nil
}
