// Package model defines domain types for the compound challenge tracker.
package model

// Step is one entry in the challenge sequence: a single trade with its
// starting balance and the profit required to complete it.
type Step struct {
	Equity       float64 `json:"equity"`
	ProfitTarget float64 `json:"profitTarget"`
	Achieved     bool    `json:"achieved"`
	Notes        string  `json:"notes"`
}

// After returns the equity reached once this step's target is met.
func (s Step) After() float64 {
	return s.Equity + s.ProfitTarget
}

// Sequence is the ordered, fixed-length plan for a whole challenge.
type Sequence []Step

// Clone returns a copy that shares no backing array with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Params holds the inputs that generate a sequence.
type Params struct {
	StartingAmount float64
	StepCount      int
	GrowthRate     float64 // fraction per step, 0.2 = 20%
}
