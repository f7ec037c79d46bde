package lollipop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/inodb/vibe-lollipop/internal/domain"
	"github.com/inodb/vibe-lollipop/internal/maf"
)

// sliceSource serves records from memory, implementing maf.RecordParser.
type sliceSource struct {
	records []*maf.Record
	i       int
}

func (s *sliceSource) Next() (*maf.Record, error) {
	if s.i >= len(s.records) {
		return nil, nil
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

func (s *sliceSource) Close() error { return nil }

func kitRecords() []*maf.Record {
	var records []*maf.Record
	samples := []string{"s1", "s2", "s3", "s4", "s5"}
	for i := 0; i < 5; i++ {
		records = append(records, &maf.Record{
			Gene:           "KIT",
			Classification: ClassMissense,
			VariantType:    "SNP",
			ProteinChange:  "p.V560D",
			Sample:         samples[i],
		})
	}
	for i := 0; i < 3; i++ {
		records = append(records, &maf.Record{
			Gene:           "KIT",
			Classification: ClassNonsense,
			VariantType:    "SNP",
			ProteinChange:  "p.D816*",
			Sample:         samples[i],
		})
	}
	// Noise that must be filtered out.
	records = append(records,
		&maf.Record{Gene: "KIT", Classification: maf.ClassSilent, ProteinChange: "p.L576L", Sample: "s1"},
		&maf.Record{Gene: "BRAF", Classification: ClassMissense, ProteinChange: "p.V600E", Sample: "s2"},
	)
	return records
}

func kitReference() domain.Lookup {
	return domain.NewTable([]*domain.ProteinAnnotation{
		{
			Gene:         "KIT",
			TranscriptID: "NM_001093772",
			ProteinID:    "NP_001087241",
			AALen:        972,
			Domains:      []domain.Segment{{Label: "Pkinase_Tyr", Start: 589, End: 933}},
		},
		{
			Gene:         "KIT",
			TranscriptID: "NM_000222",
			ProteinID:    "NP_000213",
			AALen:        976,
			Domains: []domain.Segment{
				{Label: "ig", Start: 114, End: 202},
				{Label: "Pkinase_Tyr", Start: 593, End: 937},
			},
		},
	})
}

func TestPlot_KITEndToEnd(t *testing.T) {
	res, err := Plot(&sliceSource{records: kitRecords()}, kitReference(), Options{Gene: "KIT"})
	require.NoError(t, err)
	require.NotNil(t, res)

	// Two aggregated points: 5x missense at 560, 3x nonsense at 816.
	require.Len(t, res.Points, 2)
	assert.Equal(t, 560, res.Points[0].Pos)
	assert.Equal(t, 5, res.Points[0].Count)
	assert.Equal(t, 816, res.Points[1].Pos)
	assert.Equal(t, 3, res.Points[1].Count)

	// max count 5: identity-like display mapping.
	assert.Equal(t, 6.0, res.Points[0].Display)
	assert.Equal(t, 4.0, res.Points[1].Display)

	// Longest transcript wins without explicit selection.
	assert.Equal(t, "NM_000222", res.Annotation.TranscriptID)
	assert.Equal(t, 976, res.Annotation.AALen)

	assert.Equal(t, 8, res.Records)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, 5, res.Samples)

	require.NotNil(t, res.Chart)
	var buf bytes.Buffer
	require.NoError(t, res.Chart.Render(chart.SVG, &buf))
	svg := buf.String()
	assert.True(t, strings.Contains(svg, "<svg"), "expected SVG output")
	assert.Contains(t, svg, "KIT")
}

func TestPlot_ExplicitTranscript(t *testing.T) {
	res, err := Plot(&sliceSource{records: kitRecords()}, kitReference(), Options{
		Gene:         "KIT",
		TranscriptID: "NM_001093772",
	})
	require.NoError(t, err)
	assert.Equal(t, 972, res.Annotation.AALen)
}

func TestPlot_NoGene(t *testing.T) {
	_, err := Plot(&sliceSource{}, kitReference(), Options{})
	assert.ErrorIs(t, err, ErrNoGene)
}

func TestPlot_NoMutations(t *testing.T) {
	_, err := Plot(&sliceSource{records: kitRecords()}, kitReference(), Options{Gene: "TP53"})
	assert.ErrorIs(t, err, ErrNoMutations)
}

func TestPlot_NoAnnotation(t *testing.T) {
	records := []*maf.Record{
		{Gene: "BRAF", Classification: ClassMissense, ProteinChange: "p.V600E", Sample: "s1"},
	}
	_, err := Plot(&sliceSource{records: records}, kitReference(), Options{Gene: "BRAF"})
	assert.ErrorIs(t, err, ErrNoAnnotation)
}

func TestPlot_UnknownTranscript(t *testing.T) {
	_, err := Plot(&sliceSource{records: kitRecords()}, kitReference(), Options{
		Gene:         "KIT",
		TranscriptID: "NM_999999",
	})
	assert.ErrorIs(t, err, ErrNoAnnotation)
}

func TestPlot_AllUnparsableIsFatal(t *testing.T) {
	records := []*maf.Record{
		{Gene: "KIT", Classification: ClassMissense, ProteinChange: ".", Sample: "s1"},
	}
	_, err := Plot(&sliceSource{records: records}, kitReference(), Options{Gene: "KIT"})
	assert.ErrorIs(t, err, ErrNoMutations)
}

func TestPlot_MissingLabelPositionsReturnsSummary(t *testing.T) {
	res, err := Plot(&sliceSource{records: kitRecords()}, kitReference(), Options{
		Gene:           "KIT",
		LabelPositions: []int{999},
	})
	require.NoError(t, err)

	// Degraded path: no chart, ranked summary instead.
	assert.Nil(t, res.Chart)
	require.Len(t, res.Summary, 2)
	assert.Equal(t, 560, res.Summary[0].Pos)
	assert.Equal(t, 5, res.Summary[0].Count)
	assert.Equal(t, 816, res.Summary[1].Pos)
	assert.Equal(t, 3, res.Summary[1].Count)
}

func TestPlot_DroppedRowsInvariant(t *testing.T) {
	records := append(kitRecords(),
		&maf.Record{Gene: "KIT", Classification: ClassMissense, ProteinChange: "garbage", Sample: "s9"})

	res, err := Plot(&sliceSource{records: records}, kitReference(), Options{Gene: "KIT"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Dropped)
	// Sum of aggregated counts equals parseable record count.
	assert.Equal(t, res.Records-res.Dropped, TotalCount(res.Points))
}

func TestSummarize_Ranking(t *testing.T) {
	rows := []ChangeRow{
		row(ClassMissense, "V560D", 560, "s1"),
		row(ClassMissense, "V560D", 560, "s2"),
		row(ClassMissense, "V560G", 560, "s2"),
		row(ClassNonsense, "D816*", 816, "s3"),
	}

	summary := Summarize(rows)
	require.Len(t, summary, 2)

	assert.Equal(t, 560, summary[0].Pos)
	assert.Equal(t, 3, summary[0].Count)
	assert.Equal(t, 2, summary[0].Samples)
	assert.Equal(t, "V560D/V560G", summary[0].Changes)

	assert.Equal(t, 816, summary[1].Pos)
	assert.Equal(t, 1, summary[1].Count)
}

func TestCompose_LayersAndTicks(t *testing.T) {
	points := []*Point{
		{Classification: ClassMissense, Change: "V560D", Pos: 560, Count: 5, Display: 6, DisplayPos: 560},
		{Classification: ClassNonsense, Change: "D816*", Pos: 816, Count: 3, Display: 4, DisplayPos: 816},
	}
	scale := MapCounts(points, false)
	ann := &domain.ProteinAnnotation{
		Gene: "KIT", TranscriptID: "NM_000222", AALen: 976,
		Domains: []domain.Segment{{Label: "Pkinase_Tyr", Start: 593, End: 937}},
	}

	ch := Compose(ann, points, scale, nil, Options{Gene: "KIT"})
	require.NotNil(t, ch)

	// Domain overlay first (drawn behind), one stem series per
	// classification.
	require.Len(t, ch.Series, 3)
	assert.IsType(t, domainSeries{}, ch.Series[0])
	assert.Equal(t, ClassMissense, ch.Series[1].GetName())
	assert.Equal(t, ClassNonsense, ch.Series[2].GetName())

	// Count axis carries the zero anchor plus the scale ticks.
	assert.Len(t, ch.YAxis.Ticks, len(scale.Ticks)+1)

	// Position axis ends at the protein length.
	xTicks := ch.XAxis.Ticks
	require.NotEmpty(t, xTicks)
	assert.Equal(t, 976.0, xTicks[len(xTicks)-1].Value)
}

func TestPositionTicks(t *testing.T) {
	ticks := positionTicks(976)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "976", ticks[len(ticks)-1].Label)

	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i].Value, ticks[i-1].Value)
	}
}
