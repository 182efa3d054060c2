package challenge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateZeroSteps(t *testing.T) {
	seq := Generate(100, 0, 0.1)
	require.NotNil(t, seq)
	assert.Empty(t, seq)
}

func TestGenerateNegativeStepCount(t *testing.T) {
	assert.Empty(t, Generate(100, -3, 0.1))
}

func TestGenerateDefaultProgression(t *testing.T) {
	seq := Generate(20, 30, 0.2)
	require.Len(t, seq, 30)
	assert.Equal(t, 20.0, seq[0].Equity)

	for i := 0; i+1 < len(seq); i++ {
		want := seq[i].Equity * 1.2
		assert.InEpsilon(t, want, seq[i+1].Equity, 1e-12, "step %d", i+2)
		// Targets are exact multiples of the equity.
		assert.Equal(t, seq[i].Equity+seq[i].ProfitTarget, seq[i+1].Equity, "step %d", i+2)
	}

	for i, s := range seq {
		assert.InEpsilon(t, 20*math.Pow(1.2, float64(i)), s.Equity, 1e-12, "step %d", i+1)
		assert.False(t, s.Achieved)
		assert.Empty(t, s.Notes)
	}
}

func TestGenerateTargetIsEquityTimesRate(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		n     int
		rate  float64
	}{
		{"default", 20, 30, 0.2},
		{"small rate", 1000, 50, 0.015},
		{"zero rate", 50, 5, 0},
		{"negative rate", 50, 5, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Generate(tt.start, tt.n, tt.rate)
			require.Len(t, seq, tt.n)
			for i, s := range seq {
				if s.ProfitTarget != s.Equity*tt.rate {
					t.Fatalf("step %d: target %v != equity %v * rate %v", i+1, s.ProfitTarget, s.Equity, tt.rate)
				}
			}
		})
	}
}

func TestGenerateZeroRateIsFlat(t *testing.T) {
	for _, s := range Generate(50, 5, 0) {
		assert.Equal(t, 50.0, s.Equity)
		assert.Equal(t, 0.0, s.ProfitTarget)
	}
}

func TestDefaultMatchesStockParams(t *testing.T) {
	assert.Equal(t, Generate(20, 30, 0.2), Default())
	p := DefaultParams()
	assert.Equal(t, 20.0, p.StartingAmount)
	assert.Equal(t, 30, p.StepCount)
	assert.Equal(t, 0.2, p.GrowthRate)
}
