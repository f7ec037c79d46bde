package lollipop

import (
	"sort"
	"strings"

	"github.com/inodb/vibe-lollipop/internal/hgvs"
)

// Label is one text annotation placed at a display position.
type Label struct {
	Pos  float64 // display position (post-repulsion)
	Top  float64 // display value of the tallest stem at this position
	Text string
}

// SelectLabels picks the points to label and builds their label set, one
// strategy for every mode. With all set, every point is labeled; otherwise
// only points whose Pos appears in positions. collapse merges the labels
// that share a display position into one compound label. missing reports
// requested positions with zero mutations, in input order.
func SelectLabels(points []*Point, positions []int, all, collapse bool) (labels []Label, missing []int) {
	var selected []*Point
	if all {
		selected = points
	} else {
		want := make(map[int]bool, len(positions))
		for _, pos := range positions {
			want[pos] = true
		}
		hit := make(map[int]bool, len(positions))
		for _, p := range points {
			if want[p.Pos] {
				selected = append(selected, p)
				hit[p.Pos] = true
			}
		}
		for _, pos := range positions {
			if !hit[pos] {
				missing = append(missing, pos)
			}
		}
	}

	if len(selected) == 0 {
		return nil, missing
	}

	if !collapse {
		for _, p := range selected {
			labels = append(labels, Label{Pos: p.DisplayPos, Top: p.Display, Text: p.Change})
		}
		return labels, missing
	}

	return collapseLabels(selected), missing
}

// collapseLabels merges the change strings of points sharing a display
// position into one compound label: the first change in full, the remainder
// with their residue prefix stripped, joined with "/". "P459L" + "P459V"
// becomes "P459L/V".
func collapseLabels(points []*Point) []Label {
	byPos := make(map[float64]*Label)
	var order []float64

	for _, p := range points {
		l, ok := byPos[p.DisplayPos]
		if !ok {
			byPos[p.DisplayPos] = &Label{Pos: p.DisplayPos, Top: p.Display, Text: p.Change}
			order = append(order, p.DisplayPos)
			continue
		}
		if p.Display > l.Top {
			l.Top = p.Display
		}
		suffix := hgvs.StripPrefix(p.Change)
		if !strings.HasSuffix(l.Text, "/"+suffix) && l.Text != p.Change {
			l.Text += "/" + suffix
		}
	}

	sort.Float64s(order)
	labels := make([]Label, 0, len(order))
	for _, pos := range order {
		labels = append(labels, *byPos[pos])
	}
	return labels
}
