package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jjtimmons/crispulator/internal/crispulator"
	"github.com/spf13/cobra"
)

var (
	// firstBin is the bin fold changes are computed against
	firstBin string

	// lastBin is the bin used for gene-level aggregation
	lastBin string

	// analyzeOut is the directory the analyze command writes to
	analyzeOut string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [bin CSVs]",
	Short: "Compute guide and gene statistics from per-bin count tables",
	Long: `Each argument is a CSV of raw guide counts for one sequencing bin, named
<bin>.csv with columns guide,gene,behavior,class,counts. Counts are
normalized to each bin's negative controls, log2 fold changes are
computed against --first-bin, and per-gene effect sizes and significance
are aggregated from --last-bin.`,
	Args: cobra.MinimumNArgs(2),
	Run:  runAnalyze,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&firstBin, "first-bin", "f", "bin1", "bin every fold change is computed against")
	analyzeCmd.Flags().StringVarP(&lastBin, "last-bin", "l", "bin2", "bin whose fold changes feed gene aggregation")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", ".", "directory to write the result tables to")
}

// runAnalyze reads each bin's count CSV and runs only the differential
// analysis, without simulating a screen first
func runAnalyze(cmd *cobra.Command, args []string) {
	tables := make(map[string]crispulator.CountTable, len(args))
	for _, arg := range args {
		bin := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))

		f, err := os.Open(arg)
		if err != nil {
			stderr.Fatalf("failed to open count table: %v", err)
		}
		t, err := crispulator.ReadCountTable(f, bin)
		f.Close()
		if err != nil {
			stderr.Fatalf("failed to parse count table: %v", err)
		}
		tables[bin] = t
	}

	guides, genes, err := crispulator.DifferencesBetweenBins(tables, firstBin, lastBin)
	if err != nil {
		stderr.Fatalf("failed to analyze bins: %v", err)
	}

	if err := os.MkdirAll(analyzeOut, 0755); err != nil {
		stderr.Fatalf("failed to create output directory: %v", err)
	}
	if err := writeCSV(filepath.Join(analyzeOut, "guides.csv"), func(f *os.File) error {
		return crispulator.WriteGuideTable(f, guides)
	}); err != nil {
		stderr.Fatalf("failed to write guide table: %v", err)
	}
	if err := writeCSV(filepath.Join(analyzeOut, "genes.csv"), func(f *os.File) error {
		return crispulator.WriteGeneTable(f, genes)
	}); err != nil {
		stderr.Fatalf("failed to write gene table: %v", err)
	}

	stderr.Printf("analyzed %d bins", len(tables))
}
