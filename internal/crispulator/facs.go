package crispulator

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// FacsSort reads every cell's phenotype through the sorter's measurement
// noise and collects the cells whose readout ranks inside each gate's
// quantile range. Gates slice the readout ranking, so adjacent gates
// partition the population even when readouts tie. Cells outside every
// gate are discarded, as on a real sorter.
func FacsSort(pop Population, s *FacsScreen, src rand.Source) (map[string]Population, error) {
	if len(s.Bins) == 0 {
		return nil, fmt.Errorf("%w: facs screen has no collection bins", ErrInvalidConfiguration)
	}
	for _, b := range s.Bins {
		if b.Lo < 0 || b.Hi > 1 || b.Lo >= b.Hi {
			return nil, fmt.Errorf("%w: bin %q quantile range [%g, %g]", ErrInvalidConfiguration, b.Name, b.Lo, b.Hi)
		}
	}
	if pop.Len() == 0 {
		return nil, fmt.Errorf("%w: no cells to sort", ErrInvalidConfiguration)
	}

	noise := distuv.Normal{Mu: 0, Sigma: s.SortNoise, Src: src}
	expressions := make([]float64, pop.Len())
	for i, p := range pop.Phenotypes {
		expressions[i] = p + noise.Rand()
	}

	order := make([]int, pop.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return expressions[order[i]] < expressions[order[j]] })

	n := float64(pop.Len())
	bins := make(map[string]Population, len(s.Bins))
	for _, b := range s.Bins {
		lo := int(math.Round(b.Lo * n))
		hi := int(math.Round(b.Hi * n))

		var out Population
		for _, idx := range order[lo:hi] {
			out.Guides = append(out.Guides, pop.Guides[idx])
			out.Phenotypes = append(out.Phenotypes, pop.Phenotypes[idx])
		}
		bins[b.Name] = out
	}
	return bins, nil
}
