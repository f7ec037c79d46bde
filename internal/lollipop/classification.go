// Package lollipop implements the somatic mutation lollipop pipeline:
// record filtering, protein-change aggregation, count-axis compression,
// marker repulsion and label layout over a protein's domain structure.
package lollipop

import "github.com/wcharczuk/go-chart/v2/drawing"

// MAF variant classifications the pipeline recognizes.
const (
	ClassMissense        = "Missense_Mutation"
	ClassNonsense        = "Nonsense_Mutation"
	ClassNonstop         = "Nonstop_Mutation"
	ClassFrameShiftDel   = "Frame_Shift_Del"
	ClassFrameShiftIns   = "Frame_Shift_Ins"
	ClassInFrameDel      = "In_Frame_Del"
	ClassInFrameIns      = "In_Frame_Ins"
	ClassSpliceSite      = "Splice_Site"
	ClassTranslationSite = "Translation_Start_Site"
)

// Collapsed categories.
const (
	CategoryTruncating = "Truncating"
	CategoryMissense   = "Missense"
	CategoryInFrame    = "In-frame"
	CategoryOther      = "Other"
)

// CollapsedClass maps variant classifications onto the reduced category set
// used when collapsed-category mode is active. Classifications missing from
// the map collapse to CategoryOther.
var CollapsedClass = map[string]string{
	ClassNonsense:        CategoryTruncating,
	ClassNonstop:         CategoryTruncating,
	ClassFrameShiftDel:   CategoryTruncating,
	ClassFrameShiftIns:   CategoryTruncating,
	ClassSpliceSite:      CategoryTruncating,
	ClassTranslationSite: CategoryTruncating,
	ClassMissense:        CategoryMissense,
	ClassInFrameDel:      CategoryInFrame,
	ClassInFrameIns:      CategoryInFrame,
}

// DefaultColors maps variant classifications (and collapsed categories) to
// marker colors. Callers may pass their own map through Options.
var DefaultColors = map[string]drawing.Color{
	ClassMissense:        {R: 0x2b, G: 0x8c, B: 0xbe, A: 255},
	ClassNonsense:        {R: 0xe4, G: 0x1a, B: 0x1c, A: 255},
	ClassNonstop:         {R: 0xe4, G: 0x1a, B: 0x1c, A: 255},
	ClassFrameShiftDel:   {R: 0xff, G: 0x7f, B: 0x00, A: 255},
	ClassFrameShiftIns:   {R: 0xfd, G: 0xbf, B: 0x6f, A: 255},
	ClassInFrameDel:      {R: 0x4d, G: 0xaf, B: 0x4a, A: 255},
	ClassInFrameIns:      {R: 0xb2, G: 0xdf, B: 0x8a, A: 255},
	ClassSpliceSite:      {R: 0x98, G: 0x4e, B: 0xa3, A: 255},
	ClassTranslationSite: {R: 0xa6, G: 0x56, B: 0x28, A: 255},

	CategoryTruncating: {R: 0xe4, G: 0x1a, B: 0x1c, A: 255},
	CategoryMissense:   {R: 0x2b, G: 0x8c, B: 0xbe, A: 255},
	CategoryInFrame:    {R: 0x4d, G: 0xaf, B: 0x4a, A: 255},
	CategoryOther:      {R: 0x99, G: 0x99, B: 0x99, A: 255},
}

// classColorFallback is used for classifications absent from the color map.
var classColorFallback = drawing.Color{R: 0x99, G: 0x99, B: 0x99, A: 255}

// ClassColor resolves the marker color for a classification, consulting the
// caller's overrides first, then DefaultColors.
func ClassColor(overrides map[string]drawing.Color, class string) drawing.Color {
	if overrides != nil {
		if c, ok := overrides[class]; ok {
			return c
		}
	}
	if c, ok := DefaultColors[class]; ok {
		return c
	}
	return classColorFallback
}

// Collapse remaps a classification through CollapsedClass.
func Collapse(class string) string {
	if c, ok := CollapsedClass[class]; ok {
		return c
	}
	return CategoryOther
}
