package challenge

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/compound/internal/model"
)

// Rejections from the sequential-completion rule. Their text is shown to
// the user as-is.
var (
	ErrStepOutOfRange  = errors.New("step out of range")
	ErrPriorIncomplete = errors.New("you must complete previous steps first")
	ErrLaterComplete   = errors.New("you must un-complete later steps first")
)

// CanSetAchieved reports whether step index may take newValue while keeping
// the achieved flags a prefix of true values.
func CanSetAchieved(seq model.Sequence, index int, newValue bool) bool {
	return CheckAchieved(seq, index, newValue) == nil
}

// CheckAchieved is CanSetAchieved with the reason for a rejection.
func CheckAchieved(seq model.Sequence, index int, newValue bool) error {
	if index < 0 || index >= len(seq) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index+1, len(seq))
	}

	if newValue {
		if index > 0 && !seq[index-1].Achieved {
			return ErrPriorIncomplete
		}
		return nil
	}

	for _, s := range seq[index+1:] {
		if s.Achieved {
			return ErrLaterComplete
		}
	}
	return nil
}
