package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/inodb/vibe-lollipop/internal/domain"
)

const domainStoreName = "protein_domains.duckdb"

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	var (
		outputDir string
		tsvOnly   bool
	)

	fs.StringVar(&outputDir, "output", "", "Output directory (default: ~/.vibe-lollipop/)")
	fs.BoolVar(&tsvOnly, "tsv-only", false, "Only download the TSV (skip building the DuckDB store)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Download the PFAM protein domain reference used for plotting.

Usage:
  vibe-lollipop download [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Download to the default location
  vibe-lollipop download

  # Download to a custom directory
  vibe-lollipop download --output /data/domains

Files downloaded:
  - %s (~5MB)
  - %s (built locally from the TSV)

After downloading, vibe-lollipop will automatically detect and use these files.
`, domain.FileName(), domainStoreName)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if outputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine home directory: %v\n", err)
			return ExitError
		}
		outputDir = filepath.Join(home, ".vibe-lollipop")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %s: %v\n", outputDir, err)
		return ExitError
	}

	fmt.Printf("Downloading protein domain reference...\n")
	fmt.Printf("Destination: %s\n\n", outputDir)

	tsvFile := filepath.Join(outputDir, domain.FileName())
	if err := downloadFile(domain.FileURL(), tsvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error downloading domain reference: %v\n", err)
		return ExitError
	}

	if !tsvOnly {
		dbFile := filepath.Join(outputDir, domainStoreName)
		fmt.Printf("  Building %s...\n", domainStoreName)
		if err := buildDomainStore(tsvFile, dbFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not build DuckDB store: %v\n", err)
			// Non-fatal: plotting falls back to the TSV
		} else {
			if info, err := os.Stat(dbFile); err == nil {
				fmt.Printf("    Done: %s\n", formatSize(info.Size()))
			}
		}
	}

	fmt.Printf("\nDownload complete!\n")
	fmt.Printf("To plot a gene, run:\n")
	fmt.Printf("  vibe-lollipop plot --gene KIT data_mutations.txt\n")

	return ExitSuccess
}

// buildDomainStore loads the TSV into a fresh DuckDB store.
func buildDomainStore(tsvPath, dbPath string) error {
	store, err := domain.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Load(tsvPath)
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(url, destPath string) error {
	// Check if file already exists
	if info, err := os.Stat(destPath); err == nil {
		fmt.Printf("  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	fmt.Printf("  Downloading %s...\n", filepath.Base(destPath))

	client := &http.Client{
		Timeout: 10 * time.Minute,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	// Create destination file
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	// Copy with progress
	var downloaded int64
	contentLength := resp.ContentLength

	pw := &progressWriter{
		total:      contentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	// Rename temp file to final destination
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Printf("    Done: %s\n", formatSize(downloaded))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	// Print progress every second
	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Printf("\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Printf("\r    Progress: %s  ", formatSize(*pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}

	return n, nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DefaultDataPath returns the default directory for downloaded reference data.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vibe-lollipop")
}

// findDomainFiles looks for the domain reference in the default location.
// The DuckDB store is preferred over the raw TSV when both are present.
func findDomainFiles() (dbPath, tsvPath string, found bool) {
	dir := DefaultDataPath()
	if dir == "" {
		return "", "", false
	}

	dPath := filepath.Join(dir, domainStoreName)
	if _, err := os.Stat(dPath); err == nil {
		dbPath = dPath
	}

	tPath := filepath.Join(dir, domain.FileName())
	if _, err := os.Stat(tPath); err == nil {
		tsvPath = tPath
	} else if _, err := os.Stat(tPath + ".gz"); err == nil {
		tsvPath = tPath + ".gz"
	}

	return dbPath, tsvPath, dbPath != "" || tsvPath != ""
}
