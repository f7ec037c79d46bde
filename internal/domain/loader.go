package domain

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Domain reference file: one row per domain segment, tab separated.
// Columns: HGNC, refseq.ID, protein.ID, aa.length, Start, End, Label.
const (
	domainFileURL  = "https://raw.githubusercontent.com/genome-nexus/genome-nexus-importer/master/data/grch38_ensembl95/export/pfam_domains.txt"
	domainFileName = "protein_domains.txt"
)

// FileURL returns the URL of the protein domain reference file.
func FileURL() string {
	return domainFileURL
}

// FileName returns the local filename for the protein domain reference file.
func FileName() string {
	return domainFileName
}

// LoadFile loads a protein domain reference TSV (optionally gzipped) into an
// in-memory Table.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open domain file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Parse parses the domain reference TSV content. Rows of one (gene,
// transcript) pair are merged into a single ProteinAnnotation.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Skip header line
	if !scanner.Scan() {
		return NewTable(nil), scanner.Err()
	}

	byTranscript := make(map[string]*ProteinAnnotation)
	var order []string
	lineNo := 1

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			return nil, fmt.Errorf("domain file line %d: expected 7 columns, found %d", lineNo, len(fields))
		}

		aaLen, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("domain file line %d: invalid aa length %q", lineNo, fields[3])
		}

		key := fields[0] + "\x00" + fields[1]
		ann, ok := byTranscript[key]
		if !ok {
			ann = &ProteinAnnotation{
				Gene:         fields[0],
				TranscriptID: fields[1],
				ProteinID:    fields[2],
				AALen:        aaLen,
			}
			byTranscript[key] = ann
			order = append(order, key)
		}
		// Transcripts without any annotated domain carry NA coordinates;
		// keep the transcript, skip the segment.
		if isNA(fields[4]) || isNA(fields[5]) {
			continue
		}
		start, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("domain file line %d: invalid start %q", lineNo, fields[4])
		}
		end, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("domain file line %d: invalid end %q", lineNo, fields[5])
		}

		ann.Domains = append(ann.Domains, Segment{
			Label: fields[6],
			Start: start,
			End:   end,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read domain file: %w", err)
	}

	anns := make([]*ProteinAnnotation, 0, len(order))
	for _, key := range order {
		anns = append(anns, byTranscript[key])
	}
	return NewTable(anns), nil
}

func isNA(s string) bool {
	return s == "" || s == "NA" || s == "."
}
