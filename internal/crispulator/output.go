package crispulator

import (
	"encoding/json"
	"log"
	"os"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// Output is the full result of one simulated screen: the design that
// was run and the per-guide and per-gene analysis tables.
type Output struct {
	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to run the simulation
	Execution float64 `json:"execution"`

	// Screen is the screen type that was simulated, "facs" or "growth"
	Screen string `json:"screen"`

	// Seed the run's random stream was started with
	Seed uint64 `json:"seed"`

	// NumGenes targeted by the simulated library
	NumGenes int `json:"numGenes"`

	// NumGuides in the simulated library
	NumGuides int `json:"numGuides"`

	// Doublings is the number of growth rounds during transfection
	// expansion; -1 means the built population was bottlenecked instead
	Doublings int `json:"doublings"`

	// Guides are the per-guide analysis rows
	Guides GuideTable `json:"guides"`

	// Genes are the per-gene effect and significance rows
	Genes GeneTable `json:"genes"`
}

// WriteJSON writes the output to a file at the path.
func (out *Output) WriteJSON(path string) error {
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
