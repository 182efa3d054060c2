package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/cli"
)

var (
	editEquity string
	editTarget string
)

var editCmd = &cobra.Command{
	Use:   "edit <step> [field=value...]",
	Short: "Overwrite fields of a step",
	Long: "Overwrite fields of a step, either with --equity/--target or with\n" +
		"field=value pairs (equity, target, done, notes). Edited amounts are taken\n" +
		"as given: later steps are not recalculated.",
	Example: "  compound edit 3 --target 5.50\n  compound edit 3 equity=40 notes=\"gap fill\"",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editEquity, "equity", "", "New starting equity for the step")
	editCmd.Flags().StringVar(&editTarget, "target", "", "New profit target for the step")
	rootCmd.AddCommand(editCmd)
}

type fieldEdit struct {
	field challenge.Field
	label string
	raw   string
}

func collectEdits(cmd *cobra.Command, pairs []string) ([]fieldEdit, error) {
	var edits []fieldEdit
	if cmd.Flags().Changed("equity") {
		edits = append(edits, fieldEdit{challenge.FieldEquity, "--equity", editEquity})
	}
	if cmd.Flags().Changed("target") {
		edits = append(edits, fieldEdit{challenge.FieldProfitTarget, "--target", editTarget})
	}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%q: expected field=value", pair)
		}
		field, err := challenge.ParseField(name)
		if err != nil {
			return nil, err
		}
		edits = append(edits, fieldEdit{field, name, raw})
	}
	if len(edits) == 0 {
		return nil, errors.New("nothing to edit: pass --equity, --target or field=value")
	}
	return edits, nil
}

// amountReplacer lets amounts be typed the way they are displayed.
var amountReplacer = strings.NewReplacer("$", "", ",", "")

func runEdit(cmd *cobra.Command, args []string) error {
	edits, err := collectEdits(cmd, args[1:])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := cli.ParseStep(args[0], s.tracker.Len())
	if err != nil {
		return err
	}

	// Edits land together or not at all.
	step := s.tracker.Sequence()[idx]
	for _, e := range edits {
		raw := e.raw
		if e.field == challenge.FieldEquity || e.field == challenge.FieldProfitTarget {
			raw = amountReplacer.Replace(raw)
		}
		if step, err = challenge.WithField(step, e.field, raw); err != nil {
			return fmt.Errorf("%s: %w", e.label, err)
		}
	}
	if err := s.tracker.UpdateStep(idx, step); err != nil {
		return fmt.Errorf("step %s not changed: %w", cli.FormatStep(idx), err)
	}

	step = s.tracker.Sequence()[idx]
	fmt.Fprintf(cmd.OutOrStdout(), "Step %s: equity %s, target %s\n",
		cli.FormatStep(idx), cli.FormatMoney(step.Equity), cli.FormatMoney(step.ProfitTarget))
	return nil
}
