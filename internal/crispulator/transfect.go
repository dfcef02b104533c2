package crispulator

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// NoDoubling is the doubling count reported when the built population
// already exceeded its bottleneck target and was subsampled instead of
// grown.
const NoDoubling = -1

// Transfect seeds Representation cells per guide, thins them to the
// fraction expected to carry exactly one viral integration at the design
// MOI, builds that population, and then expands or bottlenecks it to
// BottleneckRepresentation cells per guide. FACS screens expand by
// tiling whole copies of the population; growth screens expand by
// phenotype-biased doubling.
//
// Transfect returns the final population, the realized per-guide
// frequencies (index == guide ID, summing to 1), and the number of
// doubling rounds performed: NoDoubling means the population was
// bottlenecked down instead, 0 that it was tiled or already large enough.
// Stamp the frequencies onto a Library with WithFrequencies.
func Transfect(lib *Library, setup ScreenSetup, guideDist Sampler, src rand.Source) (Population, []float64, int, error) {
	if lib.NumGuides() == 0 {
		return Population{}, nil, 0, fmt.Errorf("%w: empty guide library", ErrInvalidConfiguration)
	}

	switch s := setup.(type) {
	case *FacsScreen:
		return transfectFacs(lib, s, guideDist, src)
	case *GrowthScreen:
		return transfectGrowth(lib, s, guideDist, src)
	}
	return Population{}, nil, 0, fmt.Errorf("%w: unknown screen setup %T", ErrInvalidConfiguration, setup)
}

// singleIntegrationCount is the number of seeded cells expected to end
// up with exactly one viral integration at the given MOI. A seeding so
// small it thins to zero cells is a configuration error, not an empty
// screen.
func singleIntegrationCount(seeded, moi float64) (int, error) {
	if moi <= 0 {
		return 0, fmt.Errorf("%w: moi %g must be positive", ErrInvalidConfiguration, moi)
	}
	p := distuv.Poisson{Lambda: moi}.Prob(1)
	n := int(math.Round(seeded * p))
	if n == 0 {
		return 0, fmt.Errorf("%w: %g seeded cells thin to zero single-integration cells at moi %g", ErrInvalidConfiguration, seeded, moi)
	}
	return n, nil
}

func transfectFacs(lib *Library, s *FacsScreen, guideDist Sampler, src rand.Source) (Population, []float64, int, error) {
	numGuides := lib.NumGuides()
	seeded := float64(numGuides) * s.Representation
	numCells, err := singleIntegrationCount(seeded, s.MOI)
	if err != nil {
		return Population{}, nil, 0, err
	}

	pop, err := BuildCells(lib.Perturbation, lib.Guides, guideDist, numCells, s, src)
	if err != nil {
		return Population{}, nil, 0, err
	}

	expandTo := int(math.Round(s.BottleneckRepresentation * float64(numGuides)))
	if expandTo > pop.Len() {
		pop = tile(pop, expandTo)
	} else {
		pop = subsample(pop, expandTo, src)
	}
	return pop, guideFrequencies(pop, numGuides), 0, nil
}

func transfectGrowth(lib *Library, s *GrowthScreen, guideDist Sampler, src rand.Source) (Population, []float64, int, error) {
	numGuides := lib.NumGuides()
	seeded := float64(numGuides) * s.Representation
	numCells, err := singleIntegrationCount(seeded, s.MOI)
	if err != nil {
		return Population{}, nil, 0, err
	}

	pop, err := BuildCells(lib.Perturbation, lib.Guides, guideDist, numCells, s, src)
	if err != nil {
		return Population{}, nil, 0, err
	}

	target := int(math.Round(s.BottleneckRepresentation * float64(numGuides)))
	doublings := NoDoubling
	if target < pop.Len() {
		pop = subsample(pop, target, src)
	} else {
		pop, doublings, err = growToTarget(pop, target, src)
		if err != nil {
			return Population{}, nil, 0, err
		}
	}
	return pop, guideFrequencies(pop, numGuides), doublings, nil
}

// tile replicates the whole population end to end until at least n cells
// exist: whole copies only, no organic growth.
func tile(pop Population, n int) Population {
	multiples := (n + pop.Len() - 1) / pop.Len()
	out := Population{
		Guides:     make([]int, 0, multiples*pop.Len()),
		Phenotypes: make([]float64, 0, multiples*pop.Len()),
	}
	for i := 0; i < multiples; i++ {
		out.Guides = append(out.Guides, pop.Guides...)
		out.Phenotypes = append(out.Phenotypes, pop.Phenotypes...)
	}
	return out
}

// subsample draws n cells uniformly, without replacement.
func subsample(pop Population, n int, src rand.Source) Population {
	idxs := make([]int, n)
	sampleuv.WithoutReplacement(idxs, pop.Len(), src)

	out := Population{
		Guides:     make([]int, n),
		Phenotypes: make([]float64, n),
	}
	for i, idx := range idxs {
		out.Guides[i] = pop.Guides[idx]
		out.Phenotypes[i] = pop.Phenotypes[idx]
	}
	return out
}

// guideFrequencies is the share of cells carrying each guide. Guides
// with no cells left get frequency 0.
func guideFrequencies(pop Population, numGuides int) []float64 {
	freqs := make([]float64, numGuides)
	for _, g := range pop.Guides {
		freqs[g]++
	}
	total := float64(pop.Len())
	for i := range freqs {
		freqs[i] /= total
	}
	return freqs
}
