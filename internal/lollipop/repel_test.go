package lollipop

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsAt(positions ...int) []*Point {
	points := make([]*Point, len(positions))
	for i, pos := range positions {
		points[i] = &Point{Pos: pos, DisplayPos: float64(pos)}
	}
	return points
}

func TestRepel_SpreadsCluster(t *testing.T) {
	points := pointsAt(100, 102, 104, 500)
	Repel(points, 10)

	// The far point stays put.
	assert.Equal(t, 500.0, points[3].DisplayPos)

	// Cluster members spread around their center, threshold apart.
	assert.InDelta(t, 92.0, points[0].DisplayPos, 1e-9)
	assert.InDelta(t, 102.0, points[1].DisplayPos, 1e-9)
	assert.InDelta(t, 112.0, points[2].DisplayPos, 1e-9)

	// Original positions untouched.
	assert.Equal(t, 100, points[0].Pos)
	assert.Equal(t, 104, points[2].Pos)
}

func TestRepel_SamePositionSeparates(t *testing.T) {
	points := pointsAt(560, 560, 560)
	Repel(points, 5)

	seen := make(map[float64]bool)
	for _, p := range points {
		require.False(t, seen[p.DisplayPos], "coinciding DisplayPos %v", p.DisplayPos)
		seen[p.DisplayPos] = true
	}
}

func TestRepel_OrderPreserved(t *testing.T) {
	points := pointsAt(10, 12, 12, 13, 40, 41, 200, 203, 203, 400)
	Repel(points, 8)

	displays := make([]float64, len(points))
	for i, p := range points {
		displays[i] = p.DisplayPos
	}
	assert.True(t, sort.Float64sAreSorted(displays), "display positions out of order: %v", displays)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].DisplayPos, points[i-1].DisplayPos)
	}
}

func TestRepel_Idempotent(t *testing.T) {
	points := pointsAt(100, 101, 102, 103, 300)
	Repel(points, 6)

	first := make([]float64, len(points))
	for i, p := range points {
		first[i] = p.DisplayPos
	}

	Repel(points, 6)
	for i, p := range points {
		assert.Equal(t, first[i], p.DisplayPos, "point %d diverged on second run", i)
	}
}

func TestRepel_Disabled(t *testing.T) {
	points := pointsAt(100, 101)
	Repel(points, 0)
	assert.Equal(t, 100.0, points[0].DisplayPos)
	assert.Equal(t, 101.0, points[1].DisplayPos)
}

func TestRepel_SingletonUnmoved(t *testing.T) {
	points := pointsAt(42)
	Repel(points, 10)
	assert.Equal(t, 42.0, points[0].DisplayPos)
}
