package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	firstRun := !config.Exists()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	// Background styling needs ANSI output even when lipgloss guesses Ascii.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s.tracker, tui.Options{
		Config:    s.cfg,
		FirstRun:  firstRun,
		StoreInfo: s.storeInfo(),
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
