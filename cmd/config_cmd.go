package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	p := cfg.Params()
	fmt.Fprintln(out, "  [Challenge]")
	fmt.Fprintf(out, "    Starting amount: %s\n", cli.FormatMoney(p.StartingAmount))
	fmt.Fprintf(out, "    Steps:           %d\n", p.StepCount)
	fmt.Fprintf(out, "    Growth rate:     %s per step\n", cli.FormatRate(p.GrowthRate))
	fmt.Fprintln(out)

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	slot := flagSlot
	if slot == "" {
		slot = cfg.Storage.Slot
	}
	if slot == "" {
		slot = store.DefaultSlot
	}
	fmt.Fprintln(out, "  [Storage]")
	fmt.Fprintf(out, "    Database: %s\n", dbPath)
	fmt.Fprintf(out, "    Slot:     %s\n", slot)
	if _, err := os.Stat(dbPath); err == nil {
		printStoreStatus(cmd, dbPath, slot)
	} else {
		fmt.Fprintln(out, "    Status:   not created yet")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "    File:  %s\n", cfg.Log.File)
	} else {
		fmt.Fprintln(out, "    File:  disabled")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `compound setup` to reconfigure.")
	return nil
}

func printStoreStatus(cmd *cobra.Command, dbPath, slot string) {
	out := cmd.OutOrStdout()
	db, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(out, "    Status:   unreadable (%v)\n", err)
		return
	}
	defer db.Close()

	if n, err := db.SlotCount(); err == nil {
		fmt.Fprintf(out, "    Slots:    %d in use\n", n)
	}
	at, ok, err := db.UpdatedAt(slot)
	switch {
	case err != nil:
		fmt.Fprintf(out, "    Saved:    unknown (%v)\n", err)
	case !ok:
		fmt.Fprintln(out, "    Saved:    never")
	default:
		fmt.Fprintf(out, "    Saved:    %s\n", at.Local().Format(time.DateTime))
	}
}
