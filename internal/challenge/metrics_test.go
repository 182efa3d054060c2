package challenge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/compound/internal/model"
)

// completeFirst marks steps 0..k-1 achieved in order through the policy.
func completeFirst(t *testing.T, seq model.Sequence, k int) model.Sequence {
	t.Helper()
	for i := 0; i < k; i++ {
		require.NoError(t, CheckAchieved(seq, i, true))
		step, err := WithField(seq[i], FieldAchieved, "true")
		require.NoError(t, err)
		seq, err = WithStepAt(seq, i, step)
		require.NoError(t, err)
	}
	return seq
}

func TestFreshSequenceMetrics(t *testing.T) {
	seq := Default()
	assert.Equal(t, 0, CompletedCount(seq))
	assert.Equal(t, seq[0].Equity, CurrentEquity(seq))
	assert.Equal(t, 0.0, TotalProfit(seq))
	assert.Equal(t, 0.0, AverageDailyProfit(seq))

	_, ok := EstimatedStepsRemaining(seq)
	assert.False(t, ok)
}

func TestCompletedPrefixMetrics(t *testing.T) {
	for k := 1; k <= 30; k++ {
		seq := completeFirst(t, Default(), k)
		assert.Equal(t, k, CompletedCount(seq))
		assert.Equal(t, seq[k-1].Equity, CurrentEquity(seq))
	}
}

// Pins the start-of-step semantic: completing step 1 leaves current equity
// at step 1's starting balance, not at its balance after the target.
func TestCurrentEquityUsesStartOfLastAchievedStep(t *testing.T) {
	seq := completeFirst(t, Default(), 1)
	assert.Equal(t, 20.0, CurrentEquity(seq))
	assert.NotEqual(t, seq[0].After(), CurrentEquity(seq))
}

// Pins the goal semantic: the final step's starting equity, not its
// equity after the final target.
func TestGoalAmountIsLastStartingEquity(t *testing.T) {
	seq := Default()
	assert.Equal(t, seq[29].Equity, GoalAmount(seq))
	assert.Less(t, GoalAmount(seq), seq[29].After())
}

func TestEndToEndFiveSteps(t *testing.T) {
	seq := completeFirst(t, Generate(20, 30, 0.2), 5)

	assert.Equal(t, 5, CompletedCount(seq))
	assert.InDelta(t, 20*math.Pow(1.2, 4), CurrentEquity(seq), 1e-9)
	assert.InDelta(t, 41.47, CurrentEquity(seq), 0.005)
	assert.InDelta(t, 20*math.Pow(1.2, 29), GoalAmount(seq), 1e-6)
	assert.InDelta(t, 3956.27, GoalAmount(seq), 0.005)
	assert.InDelta(t, 1.048, ProgressPercentage(seq), 0.001)

	assert.InDelta(t, 21.472, TotalProfit(seq), 1e-9)
	assert.InDelta(t, 107.36, ProfitPercentage(seq), 1e-9)
	assert.InDelta(t, 21.472, AverageDailyProfit(seq), 1e-9)

	steps, ok := EstimatedStepsRemaining(seq)
	require.True(t, ok)
	assert.Equal(t, 24, steps)
}

func TestEstimateNotApplicableWhenProfitNotPositive(t *testing.T) {
	seq := completeFirst(t, Generate(50, 5, 0), 3)
	assert.Equal(t, 0.0, AverageDailyProfit(seq))
	_, ok := EstimatedStepsRemaining(seq)
	assert.False(t, ok)

	seq = completeFirst(t, Generate(50, 5, -0.1), 3)
	assert.Less(t, AverageDailyProfit(seq), 0.0)
	_, ok = EstimatedStepsRemaining(seq)
	assert.False(t, ok)
}

func TestEstimateNotApplicableWhenGoalIsZero(t *testing.T) {
	seq := completeFirst(t, Default(), 2)
	seq[29].Equity = 0
	require.Greater(t, AverageDailyProfit(seq), 0.0)

	steps, ok := EstimatedStepsRemaining(seq)
	assert.False(t, ok)
	assert.Equal(t, 0, steps)

	s, err := Summarize(seq)
	require.NoError(t, err)
	assert.False(t, s.HasEstimate)
	assert.Equal(t, 0, s.EstStepsRemaining)
}

func TestUnguardedFunctionsPanicOnEmpty(t *testing.T) {
	assert.Panics(t, func() { CurrentEquity(model.Sequence{}) })
	assert.Panics(t, func() { GoalAmount(model.Sequence{}) })
	assert.Equal(t, 0, CompletedCount(model.Sequence{}))
}

func TestZeroStartingBalanceIsNotGuarded(t *testing.T) {
	seq := Generate(0, 3, 0.2)
	assert.True(t, math.IsNaN(ProfitPercentage(seq)))
	assert.True(t, math.IsNaN(ProgressPercentage(seq)))
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(model.Sequence{})
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestSummarize(t *testing.T) {
	seq := completeFirst(t, Default(), 5)

	s, err := Summarize(seq)
	require.NoError(t, err)

	assert.Equal(t, 30, s.TotalSteps)
	assert.Equal(t, 5, s.CompletedSteps)
	assert.Equal(t, 20.0, s.StartingEquity)
	assert.Equal(t, CurrentEquity(seq), s.CurrentEquity)
	assert.Equal(t, GoalAmount(seq), s.GoalAmount)
	assert.InDelta(t, s.GoalAmount-s.CurrentEquity, s.RemainingAmount, 1e-9)
	assert.InDelta(t, 100.0/6, s.CompletionPercent, 1e-9)
	assert.True(t, s.HasEstimate)
	assert.Equal(t, 24, s.EstStepsRemaining)
	assert.False(t, s.Complete())

	require.NotNil(t, s.Next)
	assert.Equal(t, 5, s.Next.Index)
	assert.Equal(t, seq[5].Equity, s.Next.Equity)
	assert.Equal(t, seq[5].ProfitTarget, s.Next.ProfitTarget)
	assert.Equal(t, seq[5].Equity+seq[5].ProfitTarget, s.Next.After)
}

func TestSummarizeComplete(t *testing.T) {
	seq := completeFirst(t, Generate(10, 4, 0.5), 4)

	s, err := Summarize(seq)
	require.NoError(t, err)
	assert.True(t, s.Complete())
	assert.Nil(t, s.Next)
	assert.InDelta(t, 100.0, s.ProgressPercent, 1e-9)
	assert.InDelta(t, 100.0, s.CompletionPercent, 1e-9)
}
