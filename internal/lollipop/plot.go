package lollipop

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/inodb/vibe-lollipop/internal/domain"
	"github.com/inodb/vibe-lollipop/internal/maf"
)

// Fatal pipeline conditions.
var (
	ErrNoGene       = errors.New("no gene specified")
	ErrNoMutations  = errors.New("no mutation records for gene")
	ErrNoAnnotation = errors.New("no protein annotation for gene")
)

// DomainLabelMode controls how domain rectangles are labeled.
type DomainLabelMode int

const (
	DomainLabelsAll    DomainLabelMode = iota // one label per segment midpoint
	DomainLabelsUnique                        // one label per distinct domain name
	DomainLabelsNone
)

// Options configures a single plot invocation.
type Options struct {
	Gene string

	// TranscriptID / ProteinID select a specific reference transcript.
	// With neither set the longest transcript wins.
	TranscriptID string
	ProteinID    string

	// LabelPositions lists residue positions to annotate with change
	// labels; LabelAll labels every point instead.
	LabelPositions []int
	LabelAll       bool

	// CollapseClasses remaps classifications through CollapsedClass
	// before grouping. CollapseLabels merges labels sharing a display
	// position into a compound label.
	CollapseClasses bool
	CollapseLabels  bool

	// RepelThreshold enables marker repulsion for points within the
	// given residue distance of each other; 0 disables.
	RepelThreshold float64

	// SimpleAxis keeps only the (min, max) count-axis ticks.
	SimpleAxis bool

	DomainLabels DomainLabelMode

	// Colors overrides entries of DefaultColors per classification.
	Colors map[string]drawing.Color

	// Chart geometry; zero values take the letter-ish page defaults.
	Width  int
	Height int

	Logger *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// PositionSummary is one row of the ranked mutated-position summary.
type PositionSummary struct {
	Pos     int
	Count   int
	Samples int
	Changes string // distinct change strings at the position, "/"-joined
}

// Result is the outcome of one plot invocation. Chart is nil only in the
// degraded case where labels were requested for positions with zero
// mutations; Summary carries the ranked alternative then.
type Result struct {
	Chart      *chart.Chart
	Annotation *domain.ProteinAnnotation
	Points     []*Point
	Scale      AxisScale
	Labels     []Label
	Summary    []PositionSummary

	Records int // records kept after filtering
	Dropped int // records dropped for unparsable change strings
	Samples int // distinct samples among kept records
}

// Plot runs the full pipeline for one gene: filter, parse, aggregate, map
// counts, repel, select labels, overlay domains and compose the chart.
func Plot(src maf.RecordParser, ref domain.Lookup, opts Options) (*Result, error) {
	if opts.Gene == "" {
		return nil, ErrNoGene
	}
	log := opts.logger()

	var records []*maf.Record
	for {
		r, err := src.Next()
		if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		if r == nil {
			break
		}
		records = append(records, r)
	}

	kept := FilterRecords(records, opts.Gene)
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoMutations, opts.Gene)
	}

	rows, dropped := ParseChanges(kept)
	if dropped > 0 {
		log.Warn("dropped records with unparsable protein change",
			zap.String("gene", opts.Gene),
			zap.Int("dropped", dropped))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w %s: all %d change strings unparsable", ErrNoMutations, opts.Gene, dropped)
	}

	ann, err := selectAnnotation(ref, opts, log)
	if err != nil {
		return nil, err
	}

	points := Aggregate(rows, opts.CollapseClasses)
	scale := MapCounts(points, opts.SimpleAxis)
	Repel(points, opts.RepelThreshold)

	res := &Result{
		Annotation: ann,
		Points:     points,
		Scale:      scale,
		Records:    len(kept),
		Dropped:    dropped,
		Samples:    CountSamples(kept),
	}

	labels, missing := SelectLabels(points, opts.LabelPositions, opts.LabelAll, opts.CollapseLabels)
	if len(missing) > 0 {
		log.Warn("requested label positions have no mutations; returning ranked summary instead of chart",
			zap.String("gene", opts.Gene),
			zap.Ints("positions", missing))
		res.Summary = Summarize(rows)
		return res, nil
	}
	res.Labels = labels

	res.Chart = Compose(ann, points, scale, labels, opts)
	return res, nil
}

// selectAnnotation resolves the reference transcript for the gene.
func selectAnnotation(ref domain.Lookup, opts Options, log *zap.Logger) (*domain.ProteinAnnotation, error) {
	anns, err := ref.Annotations(opts.Gene)
	if err != nil {
		return nil, fmt.Errorf("lookup annotation for %s: %w", opts.Gene, err)
	}
	if len(anns) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoAnnotation, opts.Gene)
	}

	ann, explicit := domain.Select(anns, opts.TranscriptID, opts.ProteinID)
	if ann == nil {
		return nil, fmt.Errorf("%w %s: transcript %q / protein %q not found",
			ErrNoAnnotation, opts.Gene, opts.TranscriptID, opts.ProteinID)
	}
	if !explicit && len(anns) > 1 {
		log.Info("multiple transcripts for gene, using longest",
			zap.String("gene", opts.Gene),
			zap.String("transcript", ann.TranscriptID),
			zap.Int("aa_len", ann.AALen),
			zap.Int("transcripts", len(anns)))
	}
	return ann, nil
}

// Summarize builds the ranked mutated-position summary: positions ordered by
// descending mutation count, sample support and distinct changes alongside.
func Summarize(rows []ChangeRow) []PositionSummary {
	type acc struct {
		count   int
		samples map[string]struct{}
		changes []string
		seen    map[string]struct{}
	}

	byPos := make(map[int]*acc)
	var order []int
	for _, row := range rows {
		a, ok := byPos[row.Change.Pos]
		if !ok {
			a = &acc{samples: make(map[string]struct{}), seen: make(map[string]struct{})}
			byPos[row.Change.Pos] = a
			order = append(order, row.Change.Pos)
		}
		a.count++
		if row.Sample != "" {
			a.samples[row.Sample] = struct{}{}
		}
		if _, ok := a.seen[row.Change.Raw]; !ok {
			a.seen[row.Change.Raw] = struct{}{}
			a.changes = append(a.changes, row.Change.Raw)
		}
	}

	summaries := make([]PositionSummary, 0, len(order))
	for _, pos := range order {
		a := byPos[pos]
		summaries = append(summaries, PositionSummary{
			Pos:     pos,
			Count:   a.count,
			Samples: len(a.samples),
			Changes: joinChanges(a.changes),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Pos < summaries[j].Pos
	})
	return summaries
}

func joinChanges(changes []string) string {
	out := ""
	for i, c := range changes {
		if i > 0 {
			out += "/"
		}
		out += c
	}
	return out
}
