package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsWithCounts(counts ...int) []*Point {
	points := make([]*Point, len(counts))
	for i, c := range counts {
		points[i] = &Point{Pos: (i + 1) * 10, Count: c}
	}
	return points
}

func TestMapCounts_IdentityUpToFive(t *testing.T) {
	points := pointsWithCounts(1, 3, 5)
	scale := MapCounts(points, false)

	assert.Equal(t, 5, scale.MaxCount)
	assert.Equal(t, 2.0, points[0].Display)
	assert.Equal(t, 4.0, points[1].Display)
	assert.Equal(t, 6.0, points[2].Display)

	// Ticks 1..5 at positions 2..6.
	require.Len(t, scale.Ticks, 5)
	assert.Equal(t, Tick{Pos: 2, Label: "1"}, scale.Ticks[0])
	assert.Equal(t, Tick{Pos: 6, Label: "5"}, scale.Ticks[4])
}

func TestMapCounts_CompressedAboveFive(t *testing.T) {
	points := pointsWithCounts(1, 10, 20)
	scale := MapCounts(points, false)

	assert.Equal(t, 20, scale.MaxCount)
	assert.InDelta(t, 1.25, points[0].Display, 1e-9)
	assert.InDelta(t, 3.5, points[1].Display, 1e-9)
	assert.InDelta(t, 6.0, points[2].Display, 1e-9)

	// One tick per distinct display value, ascending, labeled with the
	// true count.
	require.Len(t, scale.Ticks, 3)
	assert.Equal(t, "1", scale.Ticks[0].Label)
	assert.Equal(t, "10", scale.Ticks[1].Label)
	assert.Equal(t, "20", scale.Ticks[2].Label)
}

func TestMapCounts_Monotonic(t *testing.T) {
	points := pointsWithCounts(2, 7, 7, 13, 40, 41)
	MapCounts(points, false)

	for i := 1; i < len(points); i++ {
		if points[i].Count >= points[i-1].Count {
			assert.GreaterOrEqual(t, points[i].Display, points[i-1].Display)
		}
	}
}

func TestMapCounts_DedupByRounding(t *testing.T) {
	// 8 distinct counts force the rounding dedup: at most one tick per
	// rounded display bucket.
	points := pointsWithCounts(1, 2, 3, 4, 10, 20, 30, 40)
	scale := MapCounts(points, false)

	assert.LessOrEqual(t, len(scale.Ticks), maxDisplayTicks)

	seen := make(map[float64]bool)
	for _, tick := range scale.Ticks {
		b := float64(int(tick.Pos + 0.5))
		assert.False(t, seen[b], "two ticks in rounded bucket %v", b)
		seen[b] = true
	}
}

func TestMapCounts_SimpleAxis(t *testing.T) {
	points := pointsWithCounts(1, 3, 5)
	scale := MapCounts(points, true)

	require.Len(t, scale.Ticks, 2)
	assert.Equal(t, "1", scale.Ticks[0].Label)
	assert.Equal(t, "5", scale.Ticks[1].Label)
}

func TestMapCounts_Empty(t *testing.T) {
	scale := MapCounts(nil, false)
	assert.Equal(t, 0, scale.MaxCount)
	require.Len(t, scale.Ticks, 5)
}
