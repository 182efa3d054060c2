package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestEquityChartFitsWidth(t *testing.T) {
	values := make([]float64, 30)
	labels := make([]string, 30)
	v := 20.0
	for i := range values {
		values[i] = v
		labels[i] = "#" + string(rune('0'+i%10))
		v *= 1.2
	}

	chart := EquityChart(values, 5, labels, 60, 10)
	lines := strings.Split(chart, "\n")
	assert.Greater(t, len(lines), 3)
	for i, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 60, "line %d", i)
	}
	assert.Contains(t, chart, "└")
}

func TestEquityChartFallsBackToSparkline(t *testing.T) {
	chart := EquityChart([]float64{1, 2, 3}, 1, nil, 10, 2)
	assert.NotContains(t, chart, "\n")
	assert.Equal(t, 3, lipgloss.Width(chart))
	assert.Empty(t, EquityChart(nil, 0, nil, 60, 10))
}

func TestChartTickStep(t *testing.T) {
	assert.InDelta(t, 500.0, chartTickStep(3956), 1e-9)
	assert.InDelta(t, 5.0, chartTickStep(41), 1e-9)
	assert.InDelta(t, 1.0, chartTickStep(0), 1e-9)
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "$4k", formatChartLabel(4000))
	assert.Equal(t, "$2.5k", formatChartLabel(2500))
	assert.Equal(t, "$1M", formatChartLabel(1e6))
	assert.Equal(t, "$40", formatChartLabel(40))
	assert.Equal(t, "$0.50", formatChartLabel(0.5))
}
