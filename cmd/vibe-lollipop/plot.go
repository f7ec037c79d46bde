package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-lollipop/internal/domain"
	"github.com/inodb/vibe-lollipop/internal/lollipop"
	"github.com/inodb/vibe-lollipop/internal/maf"
	"github.com/inodb/vibe-lollipop/internal/output"
)

func runPlot(args []string) int {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)

	var (
		gene            string
		aaColumn        string
		transcriptID    string
		proteinID       string
		labelSpec       string
		collapseClasses bool
		collapseLabels  bool
		repel           float64
		simpleAxis      bool
		domainLabels    string
		domainsPath     string
		outFile         string
		width           int
		height          int
	)

	fs.StringVar(&gene, "gene", "", "Gene symbol to plot (required)")
	fs.StringVar(&gene, "g", "", "Gene symbol to plot (shorthand)")
	fs.StringVar(&aaColumn, "aa-column", viper.GetString("plot.aa_column"), "Protein-change column name (default: search conventional names)")
	fs.StringVar(&transcriptID, "transcript", "", "RefSeq transcript ID to plot against")
	fs.StringVar(&proteinID, "protein", "", "RefSeq protein ID to plot against")
	fs.StringVar(&labelSpec, "label", "", "Residue positions to label, comma separated, or 'all'")
	fs.BoolVar(&collapseClasses, "collapse-classes", false, "Collapse classifications into Truncating/Missense/In-frame/Other")
	fs.BoolVar(&collapseLabels, "collapse-labels", false, "Merge labels sharing a display position into one compound label")
	fs.Float64Var(&repel, "repel", viper.GetFloat64("plot.repel"), "Repel markers closer than this many residues (0 disables)")
	fs.BoolVar(&simpleAxis, "simple-axis", false, "Keep only the min and max count-axis ticks")
	fs.StringVar(&domainLabels, "domain-labels", "all", "Domain labeling: all, unique, none")
	fs.StringVar(&domainsPath, "domains", "", "Protein domain reference file (TSV or DuckDB; default: downloaded data)")
	fs.StringVar(&outFile, "o", "", "Output SVG file (default: <gene>.svg)")
	fs.StringVar(&outFile, "output", "", "Output SVG file (default: <gene>.svg)")
	fs.IntVar(&width, "width", 0, "Chart width in pixels")
	fs.IntVar(&height, "height", 0, "Chart height in pixels")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render a lollipop plot of one gene's mutations over its protein domains.

Usage:
  vibe-lollipop plot [options] <maf-file>

Arguments:
  <maf-file>  Input MAF file (use '-' for stdin)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-lollipop plot --gene KIT data_mutations.txt
  vibe-lollipop plot --gene KIT --transcript NM_000222 -o kit.svg data_mutations.txt
  vibe-lollipop plot --gene TP53 --label all --collapse-labels --repel 10 data_mutations.txt
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

	labelPositions, labelAll, err := parseLabelSpec(labelSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	labelMode, err := parseDomainLabelMode(domainLabels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	parser, err := maf.NewParser(fs.Arg(0), aaColumn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer parser.Close()

	ref, cleanup, err := openDomainLookup(domainsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Hint: Download the domain reference with: vibe-lollipop download\n")
		return ExitError
	}
	defer cleanup()

	logger := newLogger()
	defer logger.Sync()

	res, err := lollipop.Plot(parser, ref, lollipop.Options{
		Gene:            gene,
		TranscriptID:    transcriptID,
		ProteinID:       proteinID,
		LabelPositions:  labelPositions,
		LabelAll:        labelAll,
		CollapseClasses: collapseClasses,
		CollapseLabels:  collapseLabels,
		RepelThreshold:  repel,
		SimpleAxis:      simpleAxis,
		DomainLabels:    labelMode,
		Width:           width,
		Height:          height,
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, lollipop.ErrNoAnnotation) {
			fmt.Fprintf(os.Stderr, "Hint: Check the gene symbol, or refresh the domain reference with: vibe-lollipop download\n")
		}
		return ExitError
	}

	if res.Chart == nil {
		// Requested label positions carry no mutations: print the ranked
		// summary instead of writing a chart.
		fmt.Fprintf(os.Stderr, "Requested label positions have no mutations in %s; mutated positions are:\n\n", gene)
		sw := output.NewSummaryWriter(os.Stdout, res.Samples)
		if err := sw.WriteTable(res.Summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			return ExitError
		}
		return ExitError
	}

	if outFile == "" {
		outFile = gene + ".svg"
	}
	if err := lollipop.SaveSVG(res.Chart, outFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "%s: %d mutations in %d samples across %d positions (%d unparsable dropped)\n",
		gene, res.Records-res.Dropped, res.Samples, len(res.Points), res.Dropped)
	fmt.Fprintf(os.Stderr, "Wrote %s (%s, %d aa)\n", outFile, res.Annotation.TranscriptID, res.Annotation.AALen)

	return ExitSuccess
}

// parseLabelSpec parses the --label flag: "all", or comma-separated residue
// positions.
func parseLabelSpec(spec string) (positions []int, all bool, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, false, nil
	}
	if strings.EqualFold(spec, "all") {
		return nil, true, nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pos, err := strconv.Atoi(part)
		if err != nil {
			return nil, false, fmt.Errorf("invalid label position %q", part)
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return nil, false, fmt.Errorf("no label positions in %q", spec)
	}
	return positions, false, nil
}

func parseDomainLabelMode(mode string) (lollipop.DomainLabelMode, error) {
	switch mode {
	case "", "all":
		return lollipop.DomainLabelsAll, nil
	case "unique":
		return lollipop.DomainLabelsUnique, nil
	case "none":
		return lollipop.DomainLabelsNone, nil
	default:
		return 0, fmt.Errorf("unknown domain label mode %q (want all, unique or none)", mode)
	}
}

// newLogger builds the stderr logger for pipeline notices.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openDomainLookup opens the protein domain reference: an explicit TSV or
// DuckDB path, or the downloaded data in ~/.vibe-lollipop/.
func openDomainLookup(path string) (domain.Lookup, func(), error) {
	noop := func() {}

	if path == "" {
		dbPath, tsvPath, found := findDomainFiles()
		if !found {
			return nil, noop, fmt.Errorf("no protein domain reference found")
		}
		if dbPath != "" {
			path = dbPath
		} else {
			path = tsvPath
		}
	}

	if strings.HasSuffix(path, ".duckdb") || strings.HasSuffix(path, ".db") {
		store, err := domain.Open(path)
		if err != nil {
			return nil, noop, err
		}
		if !store.Loaded() {
			store.Close()
			return nil, noop, fmt.Errorf("domain store %s is empty", path)
		}
		return store, func() { store.Close() }, nil
	}

	table, err := domain.LoadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return table, noop, nil
}
