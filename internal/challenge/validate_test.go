package challenge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/compound/internal/model"
)

func TestValidate(t *testing.T) {
	good := achievedPrefix(5, 2)
	assert.NoError(t, Validate(good))
	assert.NoError(t, Validate(Default()))

	assert.ErrorIs(t, Validate(nil), ErrEmptySequence)
	assert.ErrorIs(t, Validate(model.Sequence{}), ErrEmptySequence)

	gap := achievedPrefix(5, 1)
	gap[3].Achieved = true
	assert.Error(t, Validate(gap))

	nan := Default()
	nan[4].ProfitTarget = math.NaN()
	assert.Error(t, Validate(nan))

	neg := Default()
	neg[0].Equity = -1
	assert.Error(t, Validate(neg))

	zeroStart := Default()
	zeroStart[0].Equity = 0
	assert.ErrorContains(t, Validate(zeroStart), "starting equity must be positive")

	zeroLater := Default()
	zeroLater[29].Equity = 0
	assert.NoError(t, Validate(zeroLater))
}
