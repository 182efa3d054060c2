// Package challenge implements the compounding plan: sequence generation,
// derived metrics, the sequential-completion rule, and functional edits.
package challenge

import "github.com/theirongolddev/compound/internal/model"

// Defaults used when nothing has been persisted yet.
const (
	DefaultStartingAmount = 20.0
	DefaultStepCount      = 30
	DefaultGrowthRate     = 0.2
)

// DefaultParams returns the parameters of the stock challenge.
func DefaultParams() model.Params {
	return model.Params{
		StartingAmount: DefaultStartingAmount,
		StepCount:      DefaultStepCount,
		GrowthRate:     DefaultGrowthRate,
	}
}

// Generate builds a geometric progression of stepCount steps. Each step's
// target is its equity times growthRate, and the next step starts where the
// previous one ends, so equity[i] = startingAmount * (1+growthRate)^i.
// Zero or negative growth is accepted and yields zero or negative targets.
func Generate(startingAmount float64, stepCount int, growthRate float64) model.Sequence {
	if stepCount < 0 {
		stepCount = 0
	}
	seq := make(model.Sequence, 0, stepCount)

	equity := startingAmount
	for i := 0; i < stepCount; i++ {
		target := equity * growthRate
		seq = append(seq, model.Step{
			Equity:       equity,
			ProfitTarget: target,
		})
		equity += target
	}
	return seq
}

// GenerateFrom is Generate with its inputs taken from p.
func GenerateFrom(p model.Params) model.Sequence {
	return Generate(p.StartingAmount, p.StepCount, p.GrowthRate)
}

// Default returns the stock 30-step, 20% challenge starting at 20.
func Default() model.Sequence {
	return GenerateFrom(DefaultParams())
}
