// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// LibraryConfig describes the guide library to synthesize.
type LibraryConfig struct {
	// the number of genes targeted by the library
	NumGenes int `mapstructure:"num-genes"`

	// the number of guides designed against each gene
	GuidesPerGene int `mapstructure:"guides-per-gene"`

	// the perturbation the guides perform, "knockdown" or "knockout"
	Perturbation string `mapstructure:"perturbation"`

	// the fraction of genes whose perturbation raises the readout
	FracIncreasing float64 `mapstructure:"frac-increasing"`

	// the fraction of genes whose perturbation lowers the readout
	FracDecreasing float64 `mapstructure:"frac-decreasing"`

	// the fraction of genes targeted by negative control guides
	FracNegControl float64 `mapstructure:"frac-negcontrol"`

	// the fraction of guides with a sigmoidal phenotype response
	FracSigmoidal float64 `mapstructure:"frac-sigmoidal"`

	// the lognormal sigma of the synthesized pool's abundance skew
	FreqSkew float64 `mapstructure:"freq-skew"`
}

// BinConfig is one FACS collection gate as a quantile range.
type BinConfig struct {
	Name string  `mapstructure:"name"`
	Lo   float64 `mapstructure:"lo"`
	Hi   float64 `mapstructure:"hi"`
}

// ScreenConfig describes the screen design to simulate.
type ScreenConfig struct {
	// the screen type, "facs" or "growth"
	Type string `mapstructure:"type"`

	// cells seeded per guide at transfection
	Representation float64 `mapstructure:"representation"`

	// cells per guide kept around each bottleneck
	BottleneckRepresentation float64 `mapstructure:"bottleneck-representation"`

	// multiplicity of infection at transfection
	MOI float64 `mapstructure:"moi"`

	// standard deviation of growth-screen phenotype noise
	Noise float64 `mapstructure:"noise"`

	// number of bottleneck/regrowth rounds in a growth screen
	NumBottlenecks int `mapstructure:"num-bottlenecks"`

	// standard deviation of the FACS expression readout noise
	SortNoise float64 `mapstructure:"sort-noise"`

	// FACS collection gates
	Bins []BinConfig `mapstructure:"bins"`
}

// SequencingConfig describes the simulated sequencing run.
type SequencingConfig struct {
	// reads sequenced per guide in each bin
	Depth int `mapstructure:"depth"`
}

// AnalysisConfig selects the bins the differential analysis compares.
type AnalysisConfig struct {
	// the bin every fold change is computed against
	FirstBin string `mapstructure:"first-bin"`

	// the bin whose fold changes feed gene-level aggregation
	LastBin string `mapstructure:"last-bin"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line.
type Config struct {
	// Seed for the run's random stream
	Seed uint64 `mapstructure:"seed"`

	// Library synthesis settings
	Library LibraryConfig `mapstructure:"library"`

	// Screen design settings
	Screen ScreenConfig `mapstructure:"screen"`

	// Sequencing settings
	Sequencing SequencingConfig `mapstructure:"sequencing"`

	// Analysis settings
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// SetDefaults registers every setting's default with Viper. Values from
// a settings file or bound CLI flags override them.
func SetDefaults() {
	viper.SetDefault("seed", 1)

	viper.SetDefault("library.num-genes", 500)
	viper.SetDefault("library.guides-per-gene", 5)
	viper.SetDefault("library.perturbation", "knockdown")
	viper.SetDefault("library.frac-increasing", 0.1)
	viper.SetDefault("library.frac-decreasing", 0.1)
	viper.SetDefault("library.frac-negcontrol", 0.1)
	viper.SetDefault("library.frac-sigmoidal", 0.25)
	viper.SetDefault("library.freq-skew", 0.25)

	viper.SetDefault("screen.type", "facs")
	viper.SetDefault("screen.representation", 100)
	viper.SetDefault("screen.bottleneck-representation", 1000)
	viper.SetDefault("screen.moi", 0.25)
	viper.SetDefault("screen.noise", 0.01)
	viper.SetDefault("screen.num-bottlenecks", 10)
	viper.SetDefault("screen.sort-noise", 0.5)
	viper.SetDefault("screen.bins", []map[string]interface{}{
		{"name": "bin1", "lo": 0.0, "hi": 1.0 / 3.0},
		{"name": "bin2", "lo": 2.0 / 3.0, "hi": 1.0},
	})

	viper.SetDefault("sequencing.depth", 1000)

	viper.SetDefault("analysis.first-bin", "bin1")
	viper.SetDefault("analysis.last-bin", "bin2")
}

// New returns a new Config struct populated by Viper settings (either
// from the local settings.yaml) and/or command line arguments.
func New() Config {
	SetDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}
	return c
}
