// Package crispulator simulates pooled CRISPR genetic screens: it builds
// a guide library with known ground-truth phenotypes, transfects it into
// a simulated cell population, runs the population through selection and
// sequencing, and recovers per-guide and per-gene statistics from the
// resulting read counts.
package crispulator

import (
	"fmt"
	"math"
)

// Behavior is the shape of a guide's phenotype response to its perturbation.
type Behavior int

const (
	// Linear guides respond proportionally to the strength of the perturbation
	Linear Behavior = iota

	// Sigmoidal guides stay quiet until the perturbation crosses an
	// inflection point, then respond sharply
	Sigmoidal
)

var behaviorNames = map[Behavior]string{
	Linear:    "linear",
	Sigmoidal: "sigmoidal",
}

func (b Behavior) String() string {
	return behaviorNames[b]
}

// MarshalText writes the behavior's name, for JSON/CSV output.
func (b Behavior) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a behavior from its name.
func (b *Behavior) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBehavior(string(text))
	return
}

// ParseBehavior maps a behavior's name back to its value.
func ParseBehavior(name string) (Behavior, error) {
	for b, n := range behaviorNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", name)
}

// Class is a guide's expected role in the screen.
type Class int

const (
	// Increasing guides target genes whose perturbation raises the readout
	Increasing Class = iota

	// Decreasing guides target genes whose perturbation lowers the readout
	Decreasing

	// NoPhenotype guides target genes with no effect on the readout
	NoPhenotype

	// NegControl guides target nothing. They anchor normalization and
	// are the comparison population for every gene's significance test
	NegControl
)

var classNames = map[Class]string{
	Increasing:  "increasing",
	Decreasing:  "decreasing",
	NoPhenotype: "nophenotype",
	NegControl:  "negcontrol",
}

func (c Class) String() string {
	return classNames[c]
}

// MarshalText writes the class's name, for JSON/CSV output.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a class from its name.
func (c *Class) UnmarshalText(text []byte) (err error) {
	*c, err = ParseClass(string(text))
	return
}

// ParseClass maps a class's name back to its value.
func ParseClass(name string) (Class, error) {
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", name)
}

// Barcode is a single guide: the gene it targets, the theoretical
// phenotype of a cell carrying it, and the frequency it reached after
// transfection.
type Barcode struct {
	// ID is the guide's index into its Library's guide sequence
	ID int `json:"id"`

	// Gene is the index of the gene this guide targets
	Gene int `json:"gene"`

	// Phenotype is the theoretical phenotype, roughly in [-1, 1], of a
	// cell carrying a fully effective copy of this guide
	Phenotype float64 `json:"phenotype"`

	// Behavior is the shape of the guide's phenotype response
	Behavior Behavior `json:"behavior"`

	// Class is the guide's expected role in the screen
	Class Class `json:"class"`

	// InitialFreq is the realized frequency of this guide after
	// transfection. NaN until a transfection pipeline run completes;
	// afterwards the values sum to 1 across a Library
	InitialFreq float64 `json:"initialFreq"`
}

// Perturbation is the genetic edit the library performs in each cell.
type Perturbation interface {
	perturbation()
}

// Knockdown is a partial, continuous repression of the target (CRISPRi).
type Knockdown struct{}

func (Knockdown) perturbation() {}

// Knockout is a binary disruption of the target (CRISPRn). Efficacy is
// drawn per cell from its distribution over [-1, 1]: -1 is a complete
// knockout, 1 leaves the target intact.
type Knockout struct {
	Efficacy Sampler
}

func (Knockout) perturbation() {}

// Library is an ordered guide collection plus the perturbation model its
// guides perform. Guide IDs used elsewhere are offsets into Guides: the
// ordering is the guides' identity and is fixed for the Library's lifetime.
type Library struct {
	Guides       []Barcode
	Perturbation Perturbation
}

// NewLibrary numbers the guides by position and marks their initial
// frequencies as not-yet-realized.
func NewLibrary(guides []Barcode, p Perturbation) *Library {
	for i := range guides {
		guides[i].ID = i
		guides[i].InitialFreq = math.NaN()
	}
	return &Library{Guides: guides, Perturbation: p}
}

// NumGuides is the number of guides in the library.
func (l *Library) NumGuides() int {
	return len(l.Guides)
}

// WithFrequencies returns a copy of the Library with realized per-guide
// frequencies stamped in (index == guide ID). The receiver is left
// untouched so concurrent runs can share a single Library template.
func (l *Library) WithFrequencies(freqs []float64) *Library {
	guides := make([]Barcode, len(l.Guides))
	copy(guides, l.Guides)
	for i := range guides {
		guides[i].InitialFreq = freqs[i]
	}
	return &Library{Guides: guides, Perturbation: l.Perturbation}
}
