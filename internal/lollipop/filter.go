package lollipop

import (
	"github.com/inodb/vibe-lollipop/internal/hgvs"
	"github.com/inodb/vibe-lollipop/internal/maf"
)

// ChangeRow is one mutation record with its protein change parsed.
type ChangeRow struct {
	Classification string
	Change         hgvs.Change
	Sample         string
}

// FilterRecords selects the records for one gene, excluding silent and
// copy-number variants.
func FilterRecords(records []*maf.Record, gene string) []*maf.Record {
	var out []*maf.Record
	for _, r := range records {
		if r.Gene != gene {
			continue
		}
		if r.Classification == maf.ClassSilent {
			continue
		}
		if r.VariantType == maf.TypeCNV {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ParseChanges parses the protein-change string of each record. Records
// whose change carries no residue position are dropped; dropped reports how
// many, so the caller can log it rather than lose rows silently.
func ParseChanges(records []*maf.Record) (rows []ChangeRow, dropped int) {
	for _, r := range records {
		c, ok := hgvs.Parse(r.ProteinChange)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, ChangeRow{
			Classification: r.Classification,
			Change:         c,
			Sample:         r.Sample,
		})
	}
	return rows, dropped
}

// CountSamples returns the number of distinct sample identifiers among the
// records. Records without a sample column count as zero samples.
func CountSamples(records []*maf.Record) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Sample == "" {
			continue
		}
		seen[r.Sample] = struct{}{}
	}
	return len(seen)
}
