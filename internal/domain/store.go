package domain

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store provides protein domain lookups backed by DuckDB. The table is
// bulk-loaded once from the reference TSV and queried per plot invocation.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS protein_domains (
		gene VARCHAR,
		transcript_id VARCHAR,
		protein_id VARCHAR,
		aa_len INTEGER,
		aa_start INTEGER,
		aa_end INTEGER,
		label VARCHAR
	)`); err != nil {
		return err
	}
	// Index for per-gene lookups
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_domains_gene ON protein_domains (gene)`)
	return nil
}

// Loaded returns true if the domain table has data.
func (s *Store) Loaded() bool {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM protein_domains").Scan(&count)
	return err == nil && count > 0
}

// Count returns the number of domain rows in the table.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM protein_domains").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count domain rows: %w", err)
	}
	return count, nil
}

// Load bulk-loads the domain reference TSV using DuckDB's read_csv.
// Expected columns: HGNC, refseq.ID, protein.ID, aa.length, Start, End, Label.
// Transcripts without domains carry NA start/end; those rows keep the
// transcript length but no segment.
func (s *Store) Load(tsvPath string) error {
	// Clear any existing data first (idempotent reload)
	s.db.Exec(`DELETE FROM protein_domains`)

	query := fmt.Sprintf(`INSERT INTO protein_domains
		SELECT column0, column1, column2,
			CAST(column3 AS INTEGER),
			TRY_CAST(column4 AS INTEGER),
			TRY_CAST(column5 AS INTEGER),
			column6
		FROM read_csv('%s', delim='\t', header=true,
			columns={
				'column0': 'VARCHAR',
				'column1': 'VARCHAR',
				'column2': 'VARCHAR',
				'column3': 'VARCHAR',
				'column4': 'VARCHAR',
				'column5': 'VARCHAR',
				'column6': 'VARCHAR'
			})`, tsvPath)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading protein domain data: %w", err)
	}
	return nil
}

// Annotations returns all transcript annotations for a gene symbol.
func (s *Store) Annotations(gene string) ([]*ProteinAnnotation, error) {
	rows, err := s.db.Query(`SELECT transcript_id, protein_id, aa_len, aa_start, aa_end, label
		FROM protein_domains WHERE gene = ? ORDER BY transcript_id, aa_start`, gene)
	if err != nil {
		return nil, fmt.Errorf("query domains for %s: %w", gene, err)
	}
	defer rows.Close()

	byTranscript := make(map[string]*ProteinAnnotation)
	var anns []*ProteinAnnotation
	for rows.Next() {
		var transcriptID, proteinID string
		var aaLen int
		var start, end sql.NullInt64
		var label sql.NullString
		if err := rows.Scan(&transcriptID, &proteinID, &aaLen, &start, &end, &label); err != nil {
			return nil, fmt.Errorf("scan domain row: %w", err)
		}

		ann, ok := byTranscript[transcriptID]
		if !ok {
			ann = &ProteinAnnotation{
				Gene:         gene,
				TranscriptID: transcriptID,
				ProteinID:    proteinID,
				AALen:        aaLen,
			}
			byTranscript[transcriptID] = ann
			anns = append(anns, ann)
		}
		if start.Valid && end.Valid {
			ann.Domains = append(ann.Domains, Segment{
				Label: label.String,
				Start: int(start.Int64),
				End:   int(end.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("domain rows: %w", err)
	}

	return anns, nil
}
