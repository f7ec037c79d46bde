package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-lollipop/internal/lollipop"
)

func TestSummaryWriter_WithRate(t *testing.T) {
	var buf bytes.Buffer
	w := NewSummaryWriter(&buf, 10)

	err := w.WriteTable([]lollipop.PositionSummary{
		{Pos: 560, Count: 5, Samples: 5, Changes: "V560D/V560G"},
		{Pos: 816, Count: 3, Samples: 3, Changes: "D816*"},
	})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "Position")
	assert.Contains(t, lines[0], "Rate")
	assert.Contains(t, lines[1], "560")
	assert.Contains(t, lines[1], "50.0%")
	assert.Contains(t, lines[1], "V560D/V560G")
	assert.Contains(t, lines[2], "30.0%")
}

func TestSummaryWriter_NoSamples(t *testing.T) {
	var buf bytes.Buffer
	w := NewSummaryWriter(&buf, 0)

	err := w.WriteTable([]lollipop.PositionSummary{
		{Pos: 12, Count: 2, Samples: 0, Changes: "G12C"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "Rate")
	assert.Contains(t, out, "G12C")
}

func TestPointsWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPointsWriter(&buf)

	err := w.WriteAll([]*lollipop.Point{
		{Classification: "Missense_Mutation", Change: "V560D", Pos: 560, Count: 5},
		{Classification: "Nonsense_Mutation", Change: "D816*", Pos: 816, Count: 3},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Variant_Classification\tProtein_Change\tPosition\tCount", lines[0])
	assert.Equal(t, "Missense_Mutation\tV560D\t560\t5", lines[1])
	assert.Equal(t, "Nonsense_Mutation\tD816*\t816\t3", lines[2])
}
