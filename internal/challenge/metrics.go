package challenge

import (
	"errors"
	"math"

	"github.com/theirongolddev/compound/internal/model"
)

// ErrEmptySequence is returned by Summarize when there is nothing to measure.
var ErrEmptySequence = errors.New("challenge has no steps")

// The functions below are unguarded: they index seq[0] or seq[len-1] and
// panic on an empty sequence, and zero denominators produce Inf or NaN.
// Summarize is the checked entry point.

// CompletedCount returns the number of achieved steps.
func CompletedCount(seq model.Sequence) int {
	n := 0
	for _, s := range seq {
		if s.Achieved {
			n++
		}
	}
	return n
}

// CurrentEquity returns the starting equity of the last achieved step, or
// the challenge's starting balance when nothing is achieved yet. It is the
// balance the step started from, not the balance after its target was hit.
func CurrentEquity(seq model.Sequence) float64 {
	latest := seq[0].Equity
	for _, s := range seq {
		if s.Achieved {
			latest = s.Equity
		}
	}
	return latest
}

// GoalAmount returns the starting equity of the final step.
func GoalAmount(seq model.Sequence) float64 {
	return seq[len(seq)-1].Equity
}

// TotalProfit is current equity minus the starting balance.
func TotalProfit(seq model.Sequence) float64 {
	return CurrentEquity(seq) - seq[0].Equity
}

// ProfitPercentage is TotalProfit relative to the starting balance, in percent.
func ProfitPercentage(seq model.Sequence) float64 {
	return TotalProfit(seq) / seq[0].Equity * 100
}

// ProgressPercentage is current equity relative to the goal, in percent.
func ProgressPercentage(seq model.Sequence) float64 {
	return CurrentEquity(seq) / GoalAmount(seq) * 100
}

// AverageDailyProfit spreads ProfitPercentage evenly over completed steps.
func AverageDailyProfit(seq model.Sequence) float64 {
	done := CompletedCount(seq)
	if done == 0 {
		return 0
	}
	return ProfitPercentage(seq) / float64(done)
}

// EstimatedStepsRemaining projects how many more steps at the average rate
// it takes to reach the goal. ok is false when the average rate is not
// positive, or the projection is not a finite count, and no estimate applies.
func EstimatedStepsRemaining(seq model.Sequence) (steps int, ok bool) {
	avg := AverageDailyProfit(seq)
	if avg <= 0 {
		return 0, false
	}
	est := math.Ceil(math.Log(GoalAmount(seq)/CurrentEquity(seq)) / math.Log(1+avg/100))
	if math.IsNaN(est) || math.IsInf(est, 0) || math.Abs(est) > math.MaxInt32 {
		return 0, false
	}
	return int(est), true
}

// Summarize computes every metric in one pass over a non-empty sequence.
func Summarize(seq model.Sequence) (model.Summary, error) {
	if len(seq) == 0 {
		return model.Summary{}, ErrEmptySequence
	}

	done := CompletedCount(seq)
	s := model.Summary{
		TotalSteps:        len(seq),
		CompletedSteps:    done,
		StartingEquity:    seq[0].Equity,
		CurrentEquity:     CurrentEquity(seq),
		GoalAmount:        GoalAmount(seq),
		TotalProfit:       TotalProfit(seq),
		ProfitPercent:     ProfitPercentage(seq),
		ProgressPercent:   ProgressPercentage(seq),
		CompletionPercent: float64(done) / float64(len(seq)) * 100,
		AvgStepProfit:     AverageDailyProfit(seq),
	}
	s.RemainingAmount = s.GoalAmount - s.CurrentEquity
	s.EstStepsRemaining, s.HasEstimate = EstimatedStepsRemaining(seq)

	if done < len(seq) {
		next := seq[done]
		s.Next = &model.NextStep{
			Index:        done,
			Equity:       next.Equity,
			ProfitTarget: next.ProfitTarget,
			After:        next.After(),
		}
	}
	return s, nil
}
