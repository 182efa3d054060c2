package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"#", "Equity", "Notes"},
		Rows: [][]string{
			{"1", "$20.00", "first"},
			{"---"},
			{"10", "$1,234.56", ""},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7) // top, header, rule, row, separator, row, bottom

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, line)
	}
	assert.Contains(t, out, "$1,234.56")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderStepBlocks(t *testing.T) {
	out := RenderStepBlocks(12, 30, 10)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 12, strings.Count(out, "■"))
	assert.Equal(t, 18, strings.Count(out, "□"))
	assert.Empty(t, RenderStepBlocks(0, 0, 10))
}

func TestRenderProgressBarClamps(t *testing.T) {
	assert.Equal(t, 10, strings.Count(RenderProgressBar(250, 10), "█"))
	assert.Equal(t, 0, strings.Count(RenderProgressBar(-5, 10), "█"))
	assert.Equal(t, 5, strings.Count(RenderProgressBar(50, 10), "█"))
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{1, 2, 4, 8})
	assert.Equal(t, 4, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "█"))
	assert.Empty(t, RenderSparkline(nil))
}
