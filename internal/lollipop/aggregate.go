package lollipop

import "sort"

// Point is one aggregated lollipop: a distinct (classification, change,
// position) group with its raw count and display coordinates.
type Point struct {
	Classification string
	Change         string
	Pos            int
	Count          int

	// Display is the count mapped onto the compressed [1,6] axis;
	// assigned by MapCounts.
	Display float64
	// DisplayPos is the position used for drawing. It starts equal to Pos
	// and is the only field Repel moves.
	DisplayPos float64
}

// Aggregate groups rows by (classification, change, position) and emits one
// Point per group, ordered by ascending position with ties in insertion
// order. When collapse is true, classifications are first remapped through
// CollapsedClass.
func Aggregate(rows []ChangeRow, collapse bool) []*Point {
	type key struct {
		class  string
		change string
		pos    int
	}

	groups := make(map[key]*Point)
	var order []*Point

	for _, row := range rows {
		class := row.Classification
		if collapse {
			class = Collapse(class)
		}
		k := key{class: class, change: row.Change.Raw, pos: row.Change.Pos}
		p, ok := groups[k]
		if !ok {
			p = &Point{
				Classification: class,
				Change:         row.Change.Raw,
				Pos:            row.Change.Pos,
				DisplayPos:     float64(row.Change.Pos),
			}
			groups[k] = p
			order = append(order, p)
		}
		p.Count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Pos < order[j].Pos
	})
	return order
}

// TotalCount sums the raw counts of all points.
func TotalCount(points []*Point) int {
	total := 0
	for _, p := range points {
		total += p.Count
	}
	return total
}
