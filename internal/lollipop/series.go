package lollipop

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/inodb/vibe-lollipop/internal/domain"
)

// Vertical layout of the value domain: the protein bar sits under the stems,
// counts map into [1,6], labels float above.
const (
	barBottomY = 0.35
	barTopY    = 0.65
	domBottomY = 0.25
	domTopY    = 0.75
	stemBaseY  = 0.75
	axisMaxY   = 7.0
)

var (
	stemColor    = drawing.Color{R: 0x95, G: 0x95, B: 0x95, A: 255}
	barColor     = drawing.Color{R: 0xd9, G: 0xd9, B: 0xd9, A: 255}
	barEdgeColor = drawing.Color{R: 0x8c, G: 0x8c, B: 0x8c, A: 255}

	domainPalette = []drawing.Color{
		{R: 0x8d, G: 0xd3, B: 0xc7, A: 255},
		{R: 0xbe, G: 0xba, B: 0xda, A: 255},
		{R: 0xfb, G: 0x80, B: 0x72, A: 255},
		{R: 0x80, G: 0xb1, B: 0xd3, A: 255},
		{R: 0xfd, G: 0xb4, B: 0x62, A: 255},
		{R: 0xb3, G: 0xde, B: 0x69, A: 255},
		{R: 0xfc, G: 0xcd, B: 0xe5, A: 255},
		{R: 0xbc, G: 0x80, B: 0xbd, A: 255},
	}
)

// stemSeries draws the lollipops of one variant classification: a stem from
// the protein bar up to the mapped count, with a colored head marker.
type stemSeries struct {
	name   string
	style  chart.Style
	points []*Point
}

func (s stemSeries) GetName() string            { return s.name }
func (s stemSeries) GetYAxis() chart.YAxisType  { return chart.YAxisPrimary }
func (s stemSeries) GetStyle() chart.Style      { return s.style }
func (s stemSeries) Validate() error            { return nil }
func (s stemSeries) Len() int                   { return len(s.points) }
func (s stemSeries) GetValues(i int) (x, y float64) {
	return s.points[i].DisplayPos, s.points[i].Display
}

func (s stemSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)

	radius := style.DotWidth
	if radius == 0 {
		radius = 5
	}
	head := style.DotColor
	if head.IsZero() {
		head = style.StrokeColor
	}

	yBase := canvasBox.Bottom - yrange.Translate(stemBaseY)
	for _, p := range s.points {
		x := canvasBox.Left + xrange.Translate(p.DisplayPos)
		yTop := canvasBox.Bottom - yrange.Translate(p.Display)

		r.SetStrokeColor(stemColor)
		r.SetStrokeWidth(1.0)
		r.MoveTo(x, yBase)
		r.LineTo(x, yTop)
		r.Stroke()

		r.SetFillColor(head)
		r.SetStrokeColor(head.WithAlpha(200))
		r.SetStrokeWidth(1.0)
		r.Circle(float64(radius), x, yTop)
		r.FillStroke()
	}
}

// domainSeries draws the full-length protein background bar and one
// rectangle per annotated domain segment, optionally labeled.
type domainSeries struct {
	annotation *domain.ProteinAnnotation
	labelMode  DomainLabelMode
	style      chart.Style
}

func (d domainSeries) GetName() string           { return "" }
func (d domainSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (d domainSeries) GetStyle() chart.Style     { return d.style }
func (d domainSeries) Validate() error           { return nil }

func (d domainSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := d.style.InheritFrom(defaults)
	ann := d.annotation

	// Full-length background bar.
	bar := chart.Box{
		Left:   canvasBox.Left + xrange.Translate(1),
		Right:  canvasBox.Left + xrange.Translate(float64(ann.AALen)),
		Top:    canvasBox.Bottom - yrange.Translate(barTopY),
		Bottom: canvasBox.Bottom - yrange.Translate(barBottomY),
	}
	chart.Draw.Box(r, bar, chart.Style{
		FillColor:   barColor,
		StrokeColor: barEdgeColor,
		StrokeWidth: 1.0,
	})

	colors := make(map[string]drawing.Color)
	next := 0
	colorFor := func(label string) drawing.Color {
		if c, ok := colors[label]; ok {
			return c
		}
		c := domainPalette[next%len(domainPalette)]
		colors[label] = c
		next++
		return c
	}

	for _, seg := range ann.Domains {
		box := chart.Box{
			Left:   canvasBox.Left + xrange.Translate(float64(seg.Start)),
			Right:  canvasBox.Left + xrange.Translate(float64(seg.End)),
			Top:    canvasBox.Bottom - yrange.Translate(domTopY),
			Bottom: canvasBox.Bottom - yrange.Translate(domBottomY),
		}
		c := colorFor(seg.Label)
		chart.Draw.Box(r, box, chart.Style{
			FillColor:   c,
			StrokeColor: c.WithAlpha(255),
			StrokeWidth: 1.0,
		})
	}

	if d.labelMode == DomainLabelsNone {
		return
	}

	textStyle := chart.Style{
		FontSize:  8.0,
		FontColor: chart.ColorBlack,
		Font:      style.Font,
	}
	yText := canvasBox.Bottom - yrange.Translate((domBottomY+domTopY)/2)

	for _, l := range domainLabels(ann, d.labelMode) {
		x := canvasBox.Left + xrange.Translate(l.mid)
		tb := r.MeasureText(l.text)
		chart.Draw.Text(r, l.text, x-tb.Width()/2, yText+tb.Height()/2, textStyle)
	}
}

type domainLabel struct {
	mid  float64
	text string
}

// domainLabels positions one label per segment midpoint, or one per distinct
// domain name at the mean of its midpoints in unique mode.
func domainLabels(ann *domain.ProteinAnnotation, mode DomainLabelMode) []domainLabel {
	if mode != DomainLabelsUnique {
		out := make([]domainLabel, 0, len(ann.Domains))
		for _, seg := range ann.Domains {
			out = append(out, domainLabel{mid: float64(seg.Start+seg.End) / 2, text: seg.Label})
		}
		return out
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, seg := range ann.Domains {
		if _, ok := sums[seg.Label]; !ok {
			order = append(order, seg.Label)
		}
		sums[seg.Label] += float64(seg.Start+seg.End) / 2
		counts[seg.Label]++
	}

	out := make([]domainLabel, 0, len(order))
	for _, label := range order {
		out = append(out, domainLabel{mid: sums[label] / float64(counts[label]), text: label})
	}
	return out
}

// labelSeries draws change labels above their stems, with a short leader
// line down to the marker head.
type labelSeries struct {
	labels []Label
	style  chart.Style
}

func (l labelSeries) GetName() string           { return "" }
func (l labelSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (l labelSeries) GetStyle() chart.Style     { return l.style }
func (l labelSeries) Validate() error           { return nil }

func (l labelSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := l.style.InheritFrom(defaults)

	textStyle := chart.Style{
		FontSize:  8.0,
		FontColor: chart.ColorBlack,
		Font:      style.Font,
	}

	const leaderPx = 10
	for _, lab := range l.labels {
		x := canvasBox.Left + xrange.Translate(lab.Pos)
		yHead := canvasBox.Bottom - yrange.Translate(lab.Top)

		r.SetStrokeColor(stemColor)
		r.SetStrokeWidth(1.0)
		r.MoveTo(x, yHead-6)
		r.LineTo(x, yHead-leaderPx)
		r.Stroke()

		tb := r.MeasureText(lab.Text)
		chart.Draw.Text(r, lab.Text, x-tb.Width()/2, yHead-leaderPx-2, textStyle)
	}
}

// legend renders a compact classification legend in the top-right corner of
// the canvas.
func legend(entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		const (
			swatch  = 9
			pad     = 5
			lineGap = 6
		)

		textStyle := chart.Style{
			FontSize:  8.0,
			FontColor: chart.ColorBlack,
			Font:      defaults.Font,
		}

		width := 0
		for _, e := range entries {
			if w := r.MeasureText(e.name).Width(); w > width {
				width = w
			}
		}
		x := canvasBox.Right - width - swatch - 3*pad
		y := canvasBox.Top + pad

		for _, e := range entries {
			r.SetFillColor(e.color)
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(1.0)
			r.MoveTo(x, y)
			r.LineTo(x+swatch, y)
			r.LineTo(x+swatch, y+swatch)
			r.LineTo(x, y+swatch)
			r.Close()
			r.FillStroke()

			tb := r.MeasureText(e.name)
			chart.Draw.Text(r, e.name, x+swatch+pad, y+(swatch+tb.Height())/2-1, textStyle)
			y += swatch + lineGap
		}
	}
}

type legendEntry struct {
	name  string
	color drawing.Color
}
