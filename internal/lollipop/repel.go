package lollipop

// Repel spreads the DisplayPos of points whose positions crowd within
// threshold of each other, so markers do not visually overlap. Only
// DisplayPos moves; Pos stays untouched for axis-tick alignment.
//
// Clustering and spreading derive from Pos alone, so the result is
// deterministic and re-running on already-spread points is a no-op.
// A final clamp pass keeps the position order monotonic: no point ever
// crosses another.
func Repel(points []*Point, threshold float64) {
	if threshold <= 0 || len(points) < 2 {
		return
	}

	for i := 0; i < len(points); {
		// Extend the cluster while consecutive positions fall within
		// the threshold.
		j := i + 1
		for j < len(points) && float64(points[j].Pos-points[j-1].Pos) < threshold {
			j++
		}

		if n := j - i; n > 1 {
			center := 0.0
			for k := i; k < j; k++ {
				center += float64(points[k].Pos)
			}
			center /= float64(n)

			start := center - threshold*float64(n-1)/2
			for k := i; k < j; k++ {
				points[k].DisplayPos = start + threshold*float64(k-i)
			}
		} else {
			points[i].DisplayPos = float64(points[i].Pos)
		}

		i = j
	}

	// Dense neighborhoods can push a cluster's spread into the next
	// point's territory; enforce strictly increasing display positions.
	minGap := threshold / 2
	for i := 1; i < len(points); i++ {
		if points[i].DisplayPos <= points[i-1].DisplayPos {
			points[i].DisplayPos = points[i-1].DisplayPos + minGap
		}
	}
}
