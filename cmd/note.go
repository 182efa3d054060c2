package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
)

var noteCmd = &cobra.Command{
	Use:   "note <step> [text...]",
	Short: "Set the notes of a step (no text clears them)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNote,
}

func init() {
	rootCmd.AddCommand(noteCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := cli.ParseStep(args[0], s.tracker.Len())
	if err != nil {
		return err
	}
	notes := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := s.tracker.SetNotes(idx, notes); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("Notes updated for Step "+cli.FormatStep(idx)))
	return nil
}
