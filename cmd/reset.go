package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
)

var (
	resetYes   bool
	resetPurge bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard progress and notes, regenerating the challenge",
	Long: "Discard progress and notes, regenerating the challenge from the configured\n" +
		"parameters. --purge deletes the slot instead; the next command starts fresh.",
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().BoolVar(&resetPurge, "purge", false, "Delete the stored challenge from its slot")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if !resetYes {
		fmt.Fprint(out, "  Are you sure you want to reset the challenge? All progress will be lost. [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(out, "  Reset cancelled.")
			return nil
		}
	}

	if resetPurge {
		if err := s.slot.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Slot %s cleared.\n", s.slot.Name())
		return nil
	}

	if err := s.tracker.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.SuccessStyle.Render("Challenge has been reset"))
	return nil
}
