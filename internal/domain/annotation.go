// Package domain provides the protein domain reference data the lollipop
// plot overlays: per-transcript amino-acid lengths and labeled domain
// segments, keyed by gene symbol, RefSeq transcript ID, or RefSeq protein ID.
package domain

import "sort"

// Segment is one annotated domain on a protein.
type Segment struct {
	Label string // domain label (e.g. "Pkinase_Tyr")
	Start int    // first residue of the domain (1-based)
	End   int    // last residue of the domain (1-based, inclusive)
}

// ProteinAnnotation describes one reference transcript of a gene.
type ProteinAnnotation struct {
	Gene         string // gene symbol (e.g. KIT)
	TranscriptID string // RefSeq transcript (e.g. NM_000222)
	ProteinID    string // RefSeq protein (e.g. NP_000213)
	AALen        int    // total amino-acid length
	Domains      []Segment
}

// Lookup is the reference annotation collaborator interface.
type Lookup interface {
	// Annotations returns all transcript annotations for a gene symbol,
	// or an empty slice when the gene is unknown.
	Annotations(gene string) ([]*ProteinAnnotation, error)
}

// Select picks one annotation from a gene's transcripts. An explicit
// transcriptID or proteinID wins; with neither set the transcript with the
// longest amino-acid length is chosen. explicit reports whether the choice
// was forced by an ID. Returns nil when anns is empty or a requested ID
// matches nothing.
func Select(anns []*ProteinAnnotation, transcriptID, proteinID string) (chosen *ProteinAnnotation, explicit bool) {
	if transcriptID != "" || proteinID != "" {
		for _, a := range anns {
			if transcriptID != "" && a.TranscriptID == transcriptID {
				return a, true
			}
			if proteinID != "" && a.ProteinID == proteinID {
				return a, true
			}
		}
		return nil, true
	}

	for _, a := range anns {
		if chosen == nil || a.AALen > chosen.AALen {
			chosen = a
		}
	}
	return chosen, false
}

// Table is an in-memory Lookup, indexed three ways.
type Table struct {
	byGene       map[string][]*ProteinAnnotation
	byTranscript map[string]*ProteinAnnotation
	byProtein    map[string]*ProteinAnnotation
}

// NewTable builds a Table from a flat annotation list. Domain segments of
// each annotation are sorted by start coordinate.
func NewTable(anns []*ProteinAnnotation) *Table {
	t := &Table{
		byGene:       make(map[string][]*ProteinAnnotation),
		byTranscript: make(map[string]*ProteinAnnotation),
		byProtein:    make(map[string]*ProteinAnnotation),
	}
	for _, a := range anns {
		sort.SliceStable(a.Domains, func(i, j int) bool {
			return a.Domains[i].Start < a.Domains[j].Start
		})
		t.byGene[a.Gene] = append(t.byGene[a.Gene], a)
		if a.TranscriptID != "" {
			t.byTranscript[a.TranscriptID] = a
		}
		if a.ProteinID != "" {
			t.byProtein[a.ProteinID] = a
		}
	}
	return t
}

// Annotations returns all transcript annotations for a gene symbol.
func (t *Table) Annotations(gene string) ([]*ProteinAnnotation, error) {
	return t.byGene[gene], nil
}

// ByTranscript returns the annotation for a RefSeq transcript ID.
func (t *Table) ByTranscript(id string) (*ProteinAnnotation, bool) {
	a, ok := t.byTranscript[id]
	return a, ok
}

// ByProtein returns the annotation for a RefSeq protein ID.
func (t *Table) ByProtein(id string) (*ProteinAnnotation, bool) {
	a, ok := t.byProtein[id]
	return a, ok
}

// Genes returns the number of distinct genes in the table.
func (t *Table) Genes() int {
	return len(t.byGene)
}
