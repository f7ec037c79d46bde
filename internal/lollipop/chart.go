package lollipop

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/inodb/vibe-lollipop/internal/domain"
)

// Letter-ish landscape page at 96 dpi.
const (
	defaultWidth  = 1056
	defaultHeight = 816
)

// Compose builds the layered lollipop chart: domain overlay behind, one stem
// series per classification, labels on top. The returned chart is open for
// further caller-side modification before rendering.
func Compose(ann *domain.ProteinAnnotation, points []*Point, scale AxisScale, labels []Label, opts Options) *chart.Chart {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}

	// Group points per classification, first-appearance order, so every
	// classification gets its own colored series and legend entry.
	byClass := make(map[string][]*Point)
	var classes []string
	for _, p := range points {
		if _, ok := byClass[p.Classification]; !ok {
			classes = append(classes, p.Classification)
		}
		byClass[p.Classification] = append(byClass[p.Classification], p)
	}

	pad := float64(ann.AALen) * 0.02
	xrange := &chart.ContinuousRange{Min: -pad, Max: float64(ann.AALen) + pad}
	yrange := &chart.ContinuousRange{Min: 0, Max: axisMaxY}

	series := []chart.Series{
		domainSeries{annotation: ann, labelMode: opts.DomainLabels},
	}
	var entries []legendEntry
	for _, class := range classes {
		color := ClassColor(opts.Colors, class)
		series = append(series, stemSeries{
			name:   class,
			style:  chart.Style{DotColor: color, DotWidth: 5},
			points: byClass[class],
		})
		entries = append(entries, legendEntry{name: class, color: color})
	}
	if len(labels) > 0 {
		series = append(series, labelSeries{labels: labels})
	}

	yTicks := make([]chart.Tick, 0, len(scale.Ticks)+1)
	yTicks = append(yTicks, chart.Tick{Value: 0, Label: ""})
	for _, t := range scale.Ticks {
		yTicks = append(yTicks, chart.Tick{Value: t.Pos, Label: t.Label})
	}

	ch := &chart.Chart{
		Title:      fmt.Sprintf("%s (%s, %d aa)", ann.Gene, ann.TranscriptID, ann.AALen),
		TitleStyle: chart.Style{FontSize: 12},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Amino acid position",
			Range: xrange,
			Ticks: positionTicks(ann.AALen),
		},
		YAxis: chart.YAxis{
			Name:  "# Mutations",
			Range: yrange,
			Ticks: yTicks,
		},
		Series:   series,
		Elements: []chart.Renderable{legend(entries)},
	}
	return ch
}

// positionTicks builds evenly spaced residue ticks ending at the protein
// length.
func positionTicks(aaLen int) []chart.Tick {
	step := tickStep(aaLen)
	ticks := []chart.Tick{{Value: 0, Label: "0"}}
	for v := step; v < aaLen; v += step {
		// Leave room for the final length tick.
		if float64(aaLen-v) < float64(step)*0.4 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	ticks = append(ticks, chart.Tick{Value: float64(aaLen), Label: strconv.Itoa(aaLen)})
	return ticks
}

// tickStep picks a round step size giving roughly 8 position ticks.
func tickStep(aaLen int) int {
	if aaLen <= 8 {
		return 1
	}
	raw := float64(aaLen) / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := int(10 * mag)
	for _, m := range []float64{1, 2, 2.5, 5} {
		if raw <= m*mag {
			step = int(m * mag)
			break
		}
	}
	if step < 1 {
		step = 1
	}
	return step
}

// SaveSVG renders the chart to an SVG file. A missing extension is filled
// in; the configured chart width/height define the page.
func SaveSVG(c *chart.Chart, path string) error {
	if filepath.Ext(path) == "" {
		path += ".svg"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := c.Render(chart.SVG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
