// Package main provides the vibe-lollipop command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("vibe-lollipop version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "plot":
		return runPlot(args[1:])
	case "summary":
		return runSummary(args[1:])
	case "download":
		return runDownload(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initConfig wires the optional ~/.vibe-lollipop.yaml config file.
// A missing file is fine; flags always win over config values.
func initConfig() {
	viper.SetConfigName(".vibe-lollipop")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.ReadInConfig()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vibe-lollipop - Lollipop plots of somatic mutations on protein domains

Usage:
  vibe-lollipop [options] <command> [arguments]

Commands:
  plot        Render a lollipop plot for one gene from a MAF file
  summary     Print the ranked mutated-position summary for one gene
  download    Download the protein domain reference data
  config      Manage vibe-lollipop configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Download protein domain annotations (one-time setup)
  vibe-lollipop download

  # Plot KIT mutations from a MAF file
  vibe-lollipop plot --gene KIT data_mutations.txt

  # Label specific residues, collapse overlapping labels
  vibe-lollipop plot --gene KIT --label 560,816 --collapse-labels data_mutations.txt

  # Ranked positions without a chart
  vibe-lollipop summary --gene KIT data_mutations.txt

For more information on a command, use:
  vibe-lollipop <command> --help
`)
}
