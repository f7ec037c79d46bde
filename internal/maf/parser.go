// Package maf provides MAF (Mutation Annotation Format) file parsing
// functionality for the lollipop pipeline.
package maf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Standard MAF column names.
const (
	ColHugoSymbol            = "Hugo_Symbol"
	ColVariantType           = "Variant_Type"
	ColVariantClassification = "Variant_Classification"
	ColTumorSampleBarcode    = "Tumor_Sample_Barcode"
	ColHGVSpShort            = "HGVSp_Short"
)

// DefaultChangeColumns is the fallback search order for the protein-change
// annotation column when the caller does not name one explicitly.
var DefaultChangeColumns = []string{
	ColHGVSpShort,
	"Protein_Change",
	"AAChange",
	"amino_acid_change",
	"Amino_Acid_Change",
	"AAChange.refGene",
}

// ColumnIndices holds the indices of the MAF columns the pipeline reads.
type ColumnIndices struct {
	HugoSymbol            int
	VariantType           int
	VariantClassification int
	TumorSampleBarcode    int
	ProteinChange         int
}

// ResolveChangeColumn finds the protein-change column in a MAF header.
// When override is non-empty only that exact name is accepted; otherwise the
// columns in DefaultChangeColumns are tried in order. Returns the index and
// the resolved column name.
func ResolveChangeColumn(header []string, override string) (int, string, error) {
	candidates := DefaultChangeColumns
	if override != "" {
		candidates = []string{override}
	}

	for _, want := range candidates {
		for i, col := range header {
			if col == want {
				return i, want, nil
			}
		}
	}

	if override != "" {
		return -1, "", fmt.Errorf("protein-change column %q not found in header", override)
	}
	return -1, "", fmt.Errorf("no protein-change column found; tried %s", strings.Join(DefaultChangeColumns, ", "))
}

// RecordParser is the streaming interface the pipeline consumes records from.
type RecordParser interface {
	// Next returns the next record, or nil, nil at end of input.
	Next() (*Record, error)
	Close() error
}

// Parser reads mutation records from a MAF file.
type Parser struct {
	reader       *bufio.Reader
	file         *os.File
	gzipReader   *gzip.Reader
	lineNumber   int
	columns      ColumnIndices
	changeColumn string
	headerLine   string
}

// NewParser creates a new MAF parser for the given file.
// Supports both plain MAF and gzipped MAF (.maf.gz) files.
// changeColumn optionally names the protein-change column; when empty the
// DefaultChangeColumns search order applies.
func NewParser(path, changeColumn string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin, changeColumn)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read maf header: %w", err)
	}

	if _, err = file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek maf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(changeColumn); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader, changeColumn string) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(changeColumn); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads the MAF header line and resolves column indices.
func (p *Parser) parseHeader(changeColumn string) error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{
					Line:    p.lineNumber,
					Message: "no header line found",
				}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		// Skip comment lines (start with #)
		if strings.HasPrefix(line, "#") {
			continue
		}

		if line == "" {
			continue
		}

		p.headerLine = line
		return p.parseColumnIndices(line, changeColumn)
	}
}

// parseColumnIndices resolves header column names to indices.
func (p *Parser) parseColumnIndices(headerLine, changeColumn string) error {
	columns := strings.Split(headerLine, "\t")

	p.columns = ColumnIndices{
		HugoSymbol:            -1,
		VariantType:           -1,
		VariantClassification: -1,
		TumorSampleBarcode:    -1,
		ProteinChange:         -1,
	}

	for i, col := range columns {
		switch col {
		case ColHugoSymbol:
			p.columns.HugoSymbol = i
		case ColVariantType:
			p.columns.VariantType = i
		case ColVariantClassification:
			p.columns.VariantClassification = i
		case ColTumorSampleBarcode:
			p.columns.TumorSampleBarcode = i
		}
	}

	idx, name, err := ResolveChangeColumn(columns, changeColumn)
	if err != nil {
		return &ParseError{Line: p.lineNumber, Message: err.Error()}
	}
	p.columns.ProteinChange = idx
	p.changeColumn = name

	if p.columns.HugoSymbol == -1 {
		return &ParseError{
			Line:    p.lineNumber,
			Message: "required column 'Hugo_Symbol' not found in header",
		}
	}
	if p.columns.VariantClassification == -1 {
		return &ParseError{
			Line:    p.lineNumber,
			Message: "required column 'Variant_Classification' not found in header",
		}
	}

	return nil
}

// Next reads the next record from the MAF file.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read record line: %w", err)
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next() // Skip empty lines
	}

	if strings.HasPrefix(line, "#") {
		return p.Next()
	}

	return p.parseLine(line)
}

// parseLine parses a single MAF data line into a Record.
func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")

	minCols := p.columns.HugoSymbol
	if p.columns.VariantClassification > minCols {
		minCols = p.columns.VariantClassification
	}
	if len(fields) <= minCols {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minCols+1, len(fields)),
		}
	}

	r := &Record{
		Gene:           fields[p.columns.HugoSymbol],
		Classification: fields[p.columns.VariantClassification],
	}

	if p.columns.VariantType >= 0 && p.columns.VariantType < len(fields) {
		r.VariantType = fields[p.columns.VariantType]
	}
	if p.columns.TumorSampleBarcode >= 0 && p.columns.TumorSampleBarcode < len(fields) {
		r.Sample = fields[p.columns.TumorSampleBarcode]
	}
	if p.columns.ProteinChange >= 0 && p.columns.ProteinChange < len(fields) {
		r.ProteinChange = fields[p.columns.ProteinChange]
	}

	return r, nil
}

// Header returns the MAF header line.
func (p *Parser) Header() string {
	return p.headerLine
}

// ChangeColumn returns the resolved protein-change column name.
func (p *Parser) ChangeColumn() string {
	return p.changeColumn
}

// Columns returns the parsed column indices.
func (p *Parser) Columns() ColumnIndices {
	return p.columns
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during MAF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf parse error at line %d: %s", e.Line, e.Message)
}
