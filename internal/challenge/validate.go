package challenge

import (
	"fmt"
	"math"

	"github.com/theirongolddev/compound/internal/model"
)

// Validate checks the shape of a sequence restored from outside the
// generator: at least one step, finite amounts, a positive starting
// equity, no negative equity, and achieved flags forming a prefix.
func Validate(seq model.Sequence) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	if seq[0].Equity <= 0 || math.IsNaN(seq[0].Equity) {
		return fmt.Errorf("step 1: starting equity must be positive, got %v", seq[0].Equity)
	}

	pending := false
	for i, s := range seq {
		if !finite(s.Equity) || !finite(s.ProfitTarget) {
			return fmt.Errorf("step %d: non-finite amount", i+1)
		}
		if s.Equity < 0 {
			return fmt.Errorf("step %d: negative equity %v", i+1, s.Equity)
		}
		if s.Achieved && pending {
			return fmt.Errorf("step %d: achieved after an incomplete step", i+1)
		}
		if !s.Achieved {
			pending = true
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
