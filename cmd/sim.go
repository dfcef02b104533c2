package cmd

import (
	"os"
	"path/filepath"

	"github.com/jjtimmons/crispulator/config"
	"github.com/jjtimmons/crispulator/internal/crispulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// outDir is the directory the sim command writes its result tables to
var outDir string

// simCmd represents the sim command
var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate a pooled CRISPR screen and analyze it against ground truth",
	Long: `Simulate one pooled screen end to end: synthesize a guide library with
known per-gene phenotypes, transfect it into a cell population at the
configured MOI, select (by FACS sorting or serial growth), sequence each
bin, and run the differential analysis on the resulting counts.

Because the library's phenotypes are known, the output tables can be
scored against ground truth to compare screen designs before running the
real (expensive) experiment.`,
	Run: runSim,
}

func init() {
	RootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the result tables to")
	simCmd.Flags().String("type", "facs", "screen type to simulate, facs or growth")
	simCmd.Flags().Uint64("seed", 1, "seed for the run's random stream")

	// Bind the parameters to viper
	viper.BindPFlag("screen.type", simCmd.Flags().Lookup("type"))
	viper.BindPFlag("seed", simCmd.Flags().Lookup("seed"))
}

// runSim simulates one screen and writes the guide and gene tables plus
// a JSON report of the run
func runSim(cmd *cobra.Command, args []string) {
	c := config.New()

	out, err := crispulator.Run(c)
	if err != nil {
		stderr.Fatalf("failed to simulate screen: %v", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		stderr.Fatalf("failed to create output directory: %v", err)
	}

	guidePath := filepath.Join(outDir, "guides.csv")
	if err := writeCSV(guidePath, func(f *os.File) error {
		return crispulator.WriteGuideTable(f, out.Guides)
	}); err != nil {
		stderr.Fatalf("failed to write guide table: %v", err)
	}

	genePath := filepath.Join(outDir, "genes.csv")
	if err := writeCSV(genePath, func(f *os.File) error {
		return crispulator.WriteGeneTable(f, out.Genes)
	}); err != nil {
		stderr.Fatalf("failed to write gene table: %v", err)
	}

	reportPath := filepath.Join(outDir, "sim.json")
	if err := out.WriteJSON(reportPath); err != nil {
		stderr.Fatalf("failed to write report: %v", err)
	}

	stderr.Printf("wrote %s, %s and %s in %.1fs", guidePath, genePath, reportPath, out.Execution)
}

// writeCSV creates the file and hands it to the table writer
func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
