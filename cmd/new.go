package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/config"
)

var (
	newStart string
	newSteps string
	newRate  string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new challenge with different parameters",
	Long: "Start a new challenge. Unset flags keep the configured value. The\n" +
		"parameters are saved to the config so reset regenerates the same challenge.",
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newStart, "start", "", "Starting equity, e.g. 20 or $1,000")
	newCmd.Flags().StringVar(&newSteps, "steps", "", "Number of steps")
	newCmd.Flags().StringVar(&newRate, "rate", "", "Growth per step in percent, e.g. 20 or 12.5%")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cur := s.cfg.Params()
	start := strconv.FormatFloat(cur.StartingAmount, 'f', -1, 64)
	steps := strconv.Itoa(cur.StepCount)
	rate := strconv.FormatFloat(cur.GrowthRate*100, 'f', -1, 64)
	if cmd.Flags().Changed("start") {
		start = newStart
	}
	if cmd.Flags().Changed("steps") {
		steps = newSteps
	}
	if cmd.Flags().Changed("rate") {
		rate = newRate
	}

	p, err := config.ParseParams(start, steps, rate)
	if err != nil {
		return err
	}

	cfg := s.cfg
	cfg.SetParams(p)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := s.tracker.Restart(p); err != nil {
		return err
	}

	sum, err := s.tracker.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("New challenge: "+tagline(sum)))
	return nil
}
