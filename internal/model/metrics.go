package model

// Summary holds every derived metric for the current sequence state.
type Summary struct {
	TotalSteps     int
	CompletedSteps int

	StartingEquity  float64
	CurrentEquity   float64
	GoalAmount      float64
	TotalProfit     float64
	RemainingAmount float64

	ProfitPercent     float64 // total profit relative to the start, in percent
	ProgressPercent   float64 // current equity relative to the goal, in percent
	CompletionPercent float64 // completed steps relative to total steps, in percent
	AvgStepProfit     float64 // ProfitPercent spread over completed steps

	// EstStepsRemaining is only meaningful when HasEstimate is true.
	EstStepsRemaining int
	HasEstimate       bool

	Next *NextStep // nil once every step is achieved
}

// NextStep previews the first step that is not yet achieved.
type NextStep struct {
	Index        int
	Equity       float64
	ProfitTarget float64
	After        float64
}

// Complete reports whether every step has been achieved.
func (s Summary) Complete() bool {
	return s.TotalSteps > 0 && s.CompletedSteps == s.TotalSteps
}
