package crispulator

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Population is a simulated cell population as two parallel arrays:
// entry i is one cell, carrying its guide ID and its phenotype. Cells
// have no identity beyond position; pipeline stages slice, resample,
// and replace these arrays freely.
type Population struct {
	Guides     []int
	Phenotypes []float64
}

// Len is the number of cells in the population.
func (p Population) Len() int {
	return len(p.Guides)
}

// The four phenotype rules, one per perturbation x screen pairing. Kept
// as standalone functions so each is testable on its own.

// knockdownGrowthPhenotype observes the guide's theoretical phenotype
// through the growth screen's measurement noise.
func knockdownGrowthPhenotype(theoretical, noise float64) float64 {
	return theoretical + noise
}

// knockdownFacsPhenotype assigns the theoretical phenotype directly:
// FACS phenotype assignment is noiseless.
func knockdownFacsPhenotype(theoretical float64) float64 {
	return theoretical
}

// knockoutScale maps a cell's knockout efficacy in [-1, 1] to a
// phenotype scale in [0, 1]: a complete knockout (-1) passes the
// theoretical phenotype through at full strength, an ineffective
// one (1) silences it.
func knockoutScale(efficacy float64) float64 {
	return (1 - efficacy) / 2
}

// knockoutGrowthPhenotype scales the theoretical phenotype by the cell's
// knockout efficacy and observes it through measurement noise.
func knockoutGrowthPhenotype(theoretical, efficacy, noise float64) float64 {
	return theoretical*knockoutScale(efficacy) + noise
}

// knockoutFacsPhenotype scales the theoretical phenotype by the cell's
// knockout efficacy, with no noise term.
func knockoutFacsPhenotype(theoretical, efficacy float64) float64 {
	return theoretical * knockoutScale(efficacy)
}

// BuildCells draws n cells from the guide frequency distribution and
// assigns each one a phenotype under the library's perturbation and the
// screen design. It is pure over its inputs: all randomness comes from
// guideDist, the perturbation's efficacy distribution, and src.
func BuildCells(p Perturbation, guides []Barcode, guideDist Sampler, n int, setup ScreenSetup, src rand.Source) (Population, error) {
	if n < 0 {
		return Population{}, fmt.Errorf("%w: cell count %d is negative", ErrInvalidConfiguration, n)
	}
	if len(guides) == 0 {
		return Population{}, fmt.Errorf("%w: empty guide library", ErrInvalidConfiguration)
	}

	pop := Population{
		Guides:     make([]int, n),
		Phenotypes: make([]float64, n),
	}
	for i := range pop.Guides {
		pop.Guides[i] = int(guideDist.Rand())
	}

	switch pert := p.(type) {
	case Knockdown:
		switch s := setup.(type) {
		case *GrowthScreen:
			noise := distuv.Normal{Mu: 0, Sigma: s.Noise, Src: src}
			for i, g := range pop.Guides {
				pop.Phenotypes[i] = knockdownGrowthPhenotype(guides[g].Phenotype, noise.Rand())
			}
		case *FacsScreen:
			for i, g := range pop.Guides {
				pop.Phenotypes[i] = knockdownFacsPhenotype(guides[g].Phenotype)
			}
		default:
			return Population{}, fmt.Errorf("%w: unknown screen setup %T", ErrInvalidConfiguration, setup)
		}
	case Knockout:
		switch s := setup.(type) {
		case *GrowthScreen:
			noise := distuv.Normal{Mu: 0, Sigma: s.Noise, Src: src}
			for i, g := range pop.Guides {
				pop.Phenotypes[i] = knockoutGrowthPhenotype(guides[g].Phenotype, pert.Efficacy.Rand(), noise.Rand())
			}
		case *FacsScreen:
			for i, g := range pop.Guides {
				pop.Phenotypes[i] = knockoutFacsPhenotype(guides[g].Phenotype, pert.Efficacy.Rand())
			}
		default:
			return Population{}, fmt.Errorf("%w: unknown screen setup %T", ErrInvalidConfiguration, setup)
		}
	default:
		return Population{}, fmt.Errorf("%w: unknown perturbation %T", ErrInvalidConfiguration, p)
	}

	return pop, nil
}
