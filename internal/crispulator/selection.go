package crispulator

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// GrowthAssay runs the selection phase of a growth screen as serial
// passaging. Each round regrows the population under phenotype-biased
// doubling to twice the bottleneck size, then subsamples it back down
// to BottleneckRepresentation cells per guide, so guide abundances
// drift across rounds in proportion to phenotype.
func GrowthAssay(pop Population, s *GrowthScreen, numGuides int, src rand.Source) (Population, error) {
	if s.NumBottlenecks < 0 {
		return Population{}, fmt.Errorf("%w: %d bottleneck rounds", ErrInvalidConfiguration, s.NumBottlenecks)
	}

	bottleneck := int(math.Round(s.BottleneckRepresentation * float64(numGuides)))
	for round := 0; round < s.NumBottlenecks; round++ {
		grown, _, err := growToTarget(pop, 2*bottleneck, src)
		if err != nil {
			return Population{}, fmt.Errorf("bottleneck round %d: %w", round+1, err)
		}
		pop = subsample(grown, bottleneck, src)
	}
	return pop, nil
}
