// Package cmd implements the compound CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/cli"
	"github.com/theirongolddev/compound/internal/config"
	"github.com/theirongolddev/compound/internal/logging"
	"github.com/theirongolddev/compound/internal/model"
	"github.com/theirongolddev/compound/internal/store"
	"github.com/theirongolddev/compound/internal/tracker"
)

var (
	flagDB      string
	flagSlot    string
	flagQuiet   bool
	flagVerbose bool
)

// logger is replaced in PersistentPreRunE once the config is known.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "compound",
	Short: "Compounding trading-challenge tracker",
	Long: "Plan a trading challenge where every step grows equity by a fixed rate,\n" +
		"then complete the steps in order and keep notes on each trade.",
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = logger.Sync() },
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Challenge database path (default $COMPOUND_DB or the data directory)")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "", "Storage slot, for keeping several challenges in one database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices on stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug-level diagnostic log")
}

func initLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		notice(cmd, "  Config unreadable, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	l, err := logging.New(cfg.Log, flagVerbose)
	if err != nil {
		notice(cmd, "  Logging disabled: %v\n", err)
		return nil
	}
	logger = l
	logger.Debug("command started", zap.String("command", cmd.CommandPath()))
	return nil
}

// notice prints a human-facing progress line to stderr unless --quiet.
func notice(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

// session bundles what a command needs to work on the challenge.
type session struct {
	cfg     config.Config
	dbPath  string
	db      *store.DB
	slot    *store.Slot
	tracker *tracker.Tracker
}

// openSession loads the config, opens the store, and restores the challenge.
// A challenge is generated from the configured parameters when none is saved.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateParams(cfg.Params()); err != nil {
		return nil, fmt.Errorf("config [challenge]: %w", err)
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	slotName := flagSlot
	if slotName == "" {
		slotName = cfg.Storage.Slot
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	slot := store.NewSlot(db, slotName)

	tr, err := tracker.Open(slot, cfg.Params(), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	tr.Subscribe(func(seq model.Sequence) {
		logger.Debug("challenge changed",
			zap.String("slot", slot.Name()),
			zap.Int("completed", challenge.CompletedCount(seq)),
			zap.Int("steps", len(seq)))
	})
	if !tr.Restored() {
		p := tr.Params()
		notice(cmd, "  Started a new challenge: %d steps from %s at %s per step\n",
			p.StepCount, cli.FormatMoney(p.StartingAmount), cli.FormatRate(p.GrowthRate))
	}

	return &session{cfg: cfg, dbPath: dbPath, db: db, slot: slot, tracker: tr}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// storeInfo describes where the challenge lives, for display.
func (s *session) storeInfo() string {
	return fmt.Sprintf("%s (slot %s)", s.dbPath, s.slot.Name())
}
