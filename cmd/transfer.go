package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the challenge as JSON (stdout when no file or -)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the challenge with a JSON export (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := store.Encode(s.tracker.Sequence())
	if err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "-" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	notice(cmd, "  Exported %d steps to %s\n", s.tracker.Len(), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	seq, err := store.Decode(data)
	if err != nil {
		return err
	}
	if err := challenge.Validate(seq); err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.Replace(seq); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d steps (%d completed)\n", len(seq), challenge.CompletedCount(seq))
	return nil
}
