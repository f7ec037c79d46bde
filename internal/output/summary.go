// Package output provides console and file output formatting for the
// lollipop pipeline.
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inodb/vibe-lollipop/internal/lollipop"
)

// SummaryWriter writes the ranked mutated-position summary as an aligned
// table.
type SummaryWriter struct {
	w       *tabwriter.Writer
	samples int // total distinct samples, for the mutation-rate column
}

// NewSummaryWriter creates a summary writer. samples is the number of
// distinct samples in the cohort; 0 disables the rate column.
func NewSummaryWriter(w io.Writer, samples int) *SummaryWriter {
	return &SummaryWriter{
		w:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		samples: samples,
	}
}

// WriteTable writes the full ranked summary and flushes.
func (s *SummaryWriter) WriteTable(rows []lollipop.PositionSummary) error {
	if s.samples > 0 {
		fmt.Fprintln(s.w, "Position\tMutations\tSamples\tRate\tChanges")
	} else {
		fmt.Fprintln(s.w, "Position\tMutations\tSamples\tChanges")
	}

	for _, row := range rows {
		if s.samples > 0 {
			rate := float64(row.Samples) / float64(s.samples) * 100
			fmt.Fprintf(s.w, "%d\t%d\t%d\t%.1f%%\t%s\n", row.Pos, row.Count, row.Samples, rate, row.Changes)
		} else {
			fmt.Fprintf(s.w, "%d\t%d\t%d\t%s\n", row.Pos, row.Count, row.Samples, row.Changes)
		}
	}

	return s.w.Flush()
}

// PointsWriter writes aggregated lollipop points as tab-delimited rows.
type PointsWriter struct {
	w io.Writer
}

// NewPointsWriter creates a TSV writer for aggregated points.
func NewPointsWriter(w io.Writer) *PointsWriter {
	return &PointsWriter{w: w}
}

// WriteHeader writes the TSV header line.
func (p *PointsWriter) WriteHeader() error {
	_, err := fmt.Fprintln(p.w, "Variant_Classification\tProtein_Change\tPosition\tCount")
	return err
}

// Write writes a single aggregated point.
func (p *PointsWriter) Write(point *lollipop.Point) error {
	_, err := fmt.Fprintf(p.w, "%s\t%s\t%d\t%d\n",
		point.Classification, point.Change, point.Pos, point.Count)
	return err
}

// WriteAll writes the header and every point.
func (p *PointsWriter) WriteAll(points []*lollipop.Point) error {
	if err := p.WriteHeader(); err != nil {
		return err
	}
	for _, point := range points {
		if err := p.Write(point); err != nil {
			return err
		}
	}
	return nil
}
