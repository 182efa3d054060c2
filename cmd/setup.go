package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		notice(cmd, "  Config unreadable, starting from defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	p := cfg.Params()

	ask := func(prompt, current string) string {
		fmt.Fprintf(out, "%s\n     Current: %s\n     > ", prompt, current)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		fmt.Fprintln(out)
		if line == "" {
			return current
		}
		return line
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Welcome to compound!")
	fmt.Fprintln(out, "  Press Enter to keep the current value.")
	fmt.Fprintln(out)

	start := ask("  1. Starting equity", strconv.FormatFloat(p.StartingAmount, 'f', -1, 64))
	steps := ask("  2. Number of steps", strconv.Itoa(p.StepCount))
	rate := ask("  3. Growth per step (percent)", strconv.FormatFloat(p.GrowthRate*100, 'f', -1, 64))

	np, err := config.ParseParams(start, steps, rate)
	if err != nil {
		return err
	}
	cfg.SetParams(np)

	names := theme.Names()
	fmt.Fprintln(out, "  4. Color theme")
	for i, name := range names {
		marker := ""
		if name == cfg.Appearance.Theme {
			marker = " [current]"
		}
		fmt.Fprintf(out, "     (%d) %s%s\n", i+1, name, marker)
	}
	fmt.Fprint(out, "     > ")
	choice, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(choice)); err == nil && n >= 1 && n <= len(names) {
		cfg.Appearance.Theme = names[n-1]
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintln(out, "  New parameters apply to the next `compound new` or `compound reset`.")
	fmt.Fprintln(out)
	return nil
}
