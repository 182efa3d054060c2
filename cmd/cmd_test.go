package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/config"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// isolate points every XDG directory at a fresh temp dir.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("COMPOUND_DB", "")
}

// resetFlags restores every flag to its default so runs don't leak into
// each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type result struct {
	out, err string
}

func runWithInput(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errb bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return result{out: out.String(), err: errb.String()}, err
}

func run(t *testing.T, args ...string) (result, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

func mustRun(t *testing.T, args ...string) result {
	t.Helper()
	r, err := run(t, args...)
	require.NoError(t, err, "compound %s\nstderr: %s", strings.Join(args, " "), r.err)
	return r
}

func TestSummaryStartsDefaultChallenge(t *testing.T) {
	isolate(t)

	r := mustRun(t, "summary")
	assert.Contains(t, r.out, "30 steps from $20.00 to $3,956.27")
	assert.Contains(t, r.out, "0/30")
	assert.Contains(t, r.out, "Next: Step #1")
	assert.Contains(t, r.err, "Started a new challenge")

	r = mustRun(t, "summary")
	assert.NotContains(t, r.err, "Started a new challenge", "second run restores the saved challenge")
}

func TestQuietSuppressesNotices(t *testing.T) {
	isolate(t)

	r := mustRun(t, "-q", "summary")
	assert.Empty(t, r.err)
}

func TestCompleteInOrder(t *testing.T) {
	isolate(t)

	for _, n := range []string{"1", "2", "3", "4", "5"} {
		r := mustRun(t, "complete", n)
		assert.Contains(t, r.out, "Step #"+n+" marked as completed!")
	}

	r := mustRun(t, "summary")
	assert.Contains(t, r.out, "$41.47")
	assert.Contains(t, r.out, "5/30")
	assert.Contains(t, r.out, "1.05%")
}

func TestCompleteOutOfOrderRejected(t *testing.T) {
	isolate(t)

	_, err := run(t, "complete", "3")
	require.ErrorIs(t, err, challenge.ErrPriorIncomplete)

	mustRun(t, "complete", "1")
	mustRun(t, "complete", "2")
	_, err = run(t, "uncomplete", "1")
	require.ErrorIs(t, err, challenge.ErrLaterComplete)

	r := mustRun(t, "uncomplete", "2")
	assert.Contains(t, r.out, "Step #2 marked as not completed")
}

func TestCompleteBadStepArgument(t *testing.T) {
	isolate(t)

	_, err := run(t, "complete", "31")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = run(t, "complete", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestNoteSetAndClear(t *testing.T) {
	isolate(t)

	r := mustRun(t, "note", "2", "breakout", "on", "volume")
	assert.Contains(t, r.out, "Notes updated for Step #2")

	r = mustRun(t, "steps")
	assert.Contains(t, r.out, "breakout on volume")

	mustRun(t, "note", "2")
	r = mustRun(t, "steps")
	assert.NotContains(t, r.out, "breakout on volume")
}

func TestStepsPendingFilter(t *testing.T) {
	isolate(t)
	mustRun(t, "new", "--start", "100", "--steps", "3", "--rate", "10")
	mustRun(t, "complete", "1")

	r := mustRun(t, "steps", "--pending")
	assert.NotContains(t, r.out, "#1 ")
	assert.Contains(t, r.out, "#2")
	assert.Contains(t, r.out, "#3")

	r = mustRun(t, "steps")
	assert.Contains(t, r.out, "#1")
	assert.Contains(t, r.out, "1/3 completed")
}

func TestEditAmounts(t *testing.T) {
	isolate(t)

	r := mustRun(t, "edit", "2", "--equity", "100", "--target", "$12.50")
	assert.Contains(t, r.out, "equity $100.00, target $12.50")

	r = mustRun(t, "steps")
	assert.Contains(t, r.out, "$112.50")

	_, err := run(t, "edit", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to edit")

	_, err = run(t, "edit", "2", "--equity", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--equity")
	assert.ErrorIs(t, err, challenge.ErrInvalidValue)
}

func TestEditFieldPairs(t *testing.T) {
	isolate(t)

	mustRun(t, "edit", "1", "done=true", "notes=gap fill")
	r := mustRun(t, "steps")
	assert.Contains(t, r.out, "gap fill")
	assert.Contains(t, r.out, "1/30 completed")

	_, err := run(t, "edit", "3", "done=true")
	require.ErrorIs(t, err, challenge.ErrPriorIncomplete)

	_, err = run(t, "edit", "1", "size=3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")

	_, err = run(t, "edit", "1", "equity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected field=value")
}

func TestEditRejectedLeavesStepUnchanged(t *testing.T) {
	isolate(t)

	_, err := run(t, "edit", "3", "--equity", "999", "done=true")
	require.ErrorIs(t, err, challenge.ErrPriorIncomplete)
	assert.Contains(t, err.Error(), "step #3 not changed")

	_, err = run(t, "edit", "3", "notes=kept?", "equity=-5")
	require.ErrorIs(t, err, challenge.ErrInvalidValue)

	r := mustRun(t, "steps")
	assert.NotContains(t, r.out, "$999.00")
	assert.NotContains(t, r.out, "kept?")
	assert.Contains(t, r.out, "0/30 completed")

	_, err = run(t, "edit", "1", "equity=0")
	require.Error(t, err)
	assert.Contains(t, mustRun(t, "steps").out, "$20.00")
}

func TestResetNeedsConfirmation(t *testing.T) {
	isolate(t)
	mustRun(t, "complete", "1")

	r, err := runWithInput(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, r.out, "Reset cancelled.")
	assert.Contains(t, mustRun(t, "summary").out, "1/30")

	r, err = runWithInput(t, "y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, r.out, "Challenge has been reset")
	assert.Contains(t, mustRun(t, "summary").out, "0/30")

	mustRun(t, "complete", "1")
	r = mustRun(t, "reset", "--yes")
	assert.Contains(t, r.out, "Challenge has been reset")
	assert.Contains(t, mustRun(t, "summary").out, "0/30")
}

func TestResetPurgeClearsSlot(t *testing.T) {
	isolate(t)
	mustRun(t, "complete", "1")

	r := mustRun(t, "reset", "--yes", "--purge")
	assert.Contains(t, r.out, "Slot tradingChallengeTrades cleared.")

	r = mustRun(t, "summary")
	assert.Contains(t, r.err, "Started a new challenge")
	assert.Contains(t, r.out, "0/30")
}

func TestNewChallengeSavesParams(t *testing.T) {
	isolate(t)

	r := mustRun(t, "new", "--start", "$100", "--steps", "10", "--rate", "10%")
	assert.Contains(t, r.out, "New challenge: 10 steps from $100.00 to $235.79")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Challenge.StepCount)
	assert.InDelta(t, 0.1, cfg.Challenge.GrowthRate, 1e-12)

	// Reset regenerates from the saved parameters.
	mustRun(t, "complete", "1")
	mustRun(t, "reset", "--yes")
	assert.Contains(t, mustRun(t, "summary").out, "0/10")
}

func TestNewChallengeKeepsUnsetFlags(t *testing.T) {
	isolate(t)

	r := mustRun(t, "new", "--steps", "2")
	assert.Contains(t, r.out, "2 steps from $20.00 to $24.00")
}

func TestNewChallengeRejectsBadParams(t *testing.T) {
	isolate(t)

	_, err := run(t, "new", "--steps", "0")
	require.Error(t, err)
	assert.False(t, config.Exists(), "rejected parameters are not saved")
}

func TestExportImport(t *testing.T) {
	isolate(t)
	mustRun(t, "complete", "1")
	mustRun(t, "note", "1", "first win")

	file := filepath.Join(t.TempDir(), "challenge.json")
	mustRun(t, "export", file)

	r := mustRun(t, "--slot", "copy", "import", file)
	assert.Contains(t, r.out, "Imported 30 steps (1 completed)")

	r = mustRun(t, "--slot", "copy", "steps")
	assert.Contains(t, r.out, "first win")

	r = mustRun(t, "export")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(r.out), "["), "stdout export is JSON")
}

func TestImportRejectsBrokenOrder(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file,
		[]byte(`[{"equity":20,"profitTarget":4,"achieved":false,"notes":""},{"equity":24,"profitTarget":4.8,"achieved":true,"notes":""}]`),
		0o644))

	_, err := run(t, "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import rejected")
}

func TestSetupWizard(t *testing.T) {
	isolate(t)

	r, err := runWithInput(t, "50\n\n15\n2\n", "setup")
	require.NoError(t, err)
	assert.Contains(t, r.out, "Saved to")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.InDelta(t, 50, cfg.Challenge.StartingAmount, 1e-9)
	assert.Equal(t, 30, cfg.Challenge.StepCount)
	assert.InDelta(t, 0.15, cfg.Challenge.GrowthRate, 1e-12)
	assert.NotEqual(t, "flexoki-dark", cfg.Appearance.Theme)
}

func TestConfigShowsStorage(t *testing.T) {
	isolate(t)

	r := mustRun(t, "--slot", "side", "config")
	assert.Contains(t, r.out, "using defaults")
	assert.Contains(t, r.out, "compound.db")
	assert.Contains(t, r.out, "Slot:     side")
	assert.Contains(t, r.out, "not created yet")
	assert.Contains(t, r.out, "20% per step")

	mustRun(t, "summary")
	r = mustRun(t, "--slot", "side", "config")
	assert.Contains(t, r.out, "Slots:    1 in use")
	assert.Contains(t, r.out, "Saved:    never")

	r = mustRun(t, "config")
	assert.Contains(t, r.out, "Slot:     tradingChallengeTrades")
	assert.NotContains(t, r.out, "Saved:    never")
}
