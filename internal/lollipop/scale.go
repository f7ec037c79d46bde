package lollipop

import (
	"math"
	"sort"
	"strconv"
)

// Tick is one tick mark on the compressed count axis: a display-domain
// position with the true count as its label.
type Tick struct {
	Pos   float64
	Label string
}

// AxisScale maps raw counts onto the bounded display range [0,6]. The
// compression is lossy; true counts survive only in the tick labels.
type AxisScale struct {
	Ticks []Tick
	// MaxCount is the largest raw count seen.
	MaxCount int
}

// maxDisplayTicks bounds how many ticks the compressed axis may carry before
// the rounding dedup kicks in.
const maxDisplayTicks = 6

// MapCounts assigns each point's Display value and derives the count-axis
// ticks. With max count at most 5 the mapping is identity-like (display =
// 1+count, ticks 1..5 at 2..6); above that counts compress linearly into
// [1,6] and ticks reflect the distinct display values present. simple
// collapses the tick list to its (min, max) pair.
func MapCounts(points []*Point, simple bool) AxisScale {
	maxCount := 0
	for _, p := range points {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}
	scale := AxisScale{MaxCount: maxCount}

	if maxCount <= 5 {
		for _, p := range points {
			p.Display = float64(1 + p.Count)
		}
		for c := 1; c <= 5; c++ {
			scale.Ticks = append(scale.Ticks, Tick{Pos: float64(1 + c), Label: strconv.Itoa(c)})
		}
	} else {
		factor := 5.0 / float64(maxCount)
		seen := make(map[float64]int)
		var displays []float64
		for _, p := range points {
			p.Display = 1 + float64(p.Count)*factor
			if _, ok := seen[p.Display]; !ok {
				seen[p.Display] = p.Count
				displays = append(displays, p.Display)
			}
		}
		sort.Float64s(displays)

		if len(displays) > maxDisplayTicks {
			// Keep one label per rounded display bucket.
			buckets := make(map[float64]bool)
			var kept []float64
			for _, d := range displays {
				b := math.Round(d)
				if buckets[b] {
					continue
				}
				buckets[b] = true
				kept = append(kept, d)
			}
			displays = kept
		}

		for _, d := range displays {
			scale.Ticks = append(scale.Ticks, Tick{Pos: d, Label: strconv.Itoa(seen[d])})
		}
	}

	if simple && len(scale.Ticks) > 2 {
		scale.Ticks = []Tick{scale.Ticks[0], scale.Ticks[len(scale.Ticks)-1]}
	}

	return scale
}
