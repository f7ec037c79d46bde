package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inodb/vibe-lollipop/internal/lollipop"
	"github.com/inodb/vibe-lollipop/internal/maf"
	"github.com/inodb/vibe-lollipop/internal/output"
)

func runSummary(args []string) int {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	var (
		gene            string
		aaColumn        string
		collapseClasses bool
		points          bool
	)

	fs.StringVar(&gene, "gene", "", "Gene symbol to summarize (required)")
	fs.StringVar(&gene, "g", "", "Gene symbol to summarize (shorthand)")
	fs.StringVar(&aaColumn, "aa-column", "", "Protein-change column name (default: search conventional names)")
	fs.BoolVar(&collapseClasses, "collapse-classes", false, "Collapse classifications into Truncating/Missense/In-frame/Other")
	fs.BoolVar(&points, "points", false, "Emit per-change aggregated points as TSV instead of the position table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Summarize one gene's mutated residue positions without rendering a chart.

Usage:
  vibe-lollipop summary [options] <maf-file>

Arguments:
  <maf-file>  Input MAF file (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-lollipop summary --gene KIT data_mutations.txt
  vibe-lollipop summary --gene KIT --points data_mutations.txt
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if gene == "" {
		fmt.Fprintf(os.Stderr, "Error: --gene is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	parser, err := maf.NewParser(fs.Arg(0), aaColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer parser.Close()

	records, err := readRecords(parser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	filtered := lollipop.FilterRecords(records, gene)
	if len(filtered) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no mutations for gene %s\n", gene)
		return ExitError
	}

	rows, dropped := lollipop.ParseChanges(filtered)
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no parsable protein changes for gene %s\n", gene)
		return ExitError
	}

	if points {
		agg := lollipop.Aggregate(rows, collapseClasses)
		pw := output.NewPointsWriter(os.Stdout)
		if err := pw.WriteAll(agg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	} else {
		samples := lollipop.CountSamples(filtered)
		sw := output.NewSummaryWriter(os.Stdout, samples)
		if err := sw.WriteTable(lollipop.Summarize(rows)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %d records with unparsable protein changes\n", dropped)
	}

	return ExitSuccess
}

// readRecords drains a parser into memory.
func readRecords(parser maf.RecordParser) ([]*maf.Record, error) {
	var records []*maf.Record
	for {
		rec, err := parser.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, rec)
	}
}
