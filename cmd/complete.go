package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
)

var completeCmd = &cobra.Command{
	Use:   "complete <step>",
	Short: "Mark a step completed (steps complete in order)",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runSetAchieved(cmd, args[0], true) },
}

var uncompleteCmd = &cobra.Command{
	Use:   "uncomplete <step>",
	Short: "Mark a step not completed (later steps must be uncompleted first)",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runSetAchieved(cmd, args[0], false) },
}

func init() {
	rootCmd.AddCommand(completeCmd, uncompleteCmd)
}

func runSetAchieved(cmd *cobra.Command, arg string, achieved bool) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := cli.ParseStep(arg, s.tracker.Len())
	if err != nil {
		return err
	}
	if err := s.tracker.SetAchieved(idx, achieved); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if achieved {
		fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("Step %s marked as completed!", cli.FormatStep(idx))))
	} else {
		fmt.Fprintf(out, "Step %s marked as not completed\n", cli.FormatStep(idx))
	}

	sum, err := s.tracker.Summary()
	if err != nil {
		return err
	}
	if sum.Complete() {
		fmt.Fprintln(out, cli.SuccessStyle.Render("Challenge completed"))
	} else if achieved && sum.Next != nil {
		fmt.Fprintf(out, "Current equity %s. Next target: +%s on Step %s\n",
			cli.FormatMoney(sum.CurrentEquity), cli.FormatMoney(sum.Next.ProfitTarget), cli.FormatStep(sum.Next.Index))
	}
	return nil
}
