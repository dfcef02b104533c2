package crispulator

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// growBufferFactor sizes the per-round output buffer. A cell writes at
// most three descendants, so 4x the input never reallocates mid-round.
const growBufferFactor = 4

// Grow runs one round of phenotype-biased clonal doubling. Every cell
// leaves two descendants, plus one more (phenotype > 0) or one fewer
// (phenotype < 0) with probability |phenotype|, for an expected
// offspring count of 2 + phenotype. Descendants inherit their parent's
// guide and phenotype. Offspring are written into outGuides and
// outPhenotypes, which must each hold at least growBufferFactor times
// the input population; Grow returns how many cells it wrote.
func Grow(pop Population, outGuides []int, outPhenotypes []float64, src rand.Source) int {
	rnd := rand.New(src)
	written := 0
	for i, g := range pop.Guides {
		p := pop.Phenotypes[i]
		offspring := 2
		if rnd.Float64() < math.Abs(p) {
			if p > 0 {
				offspring = 3
			} else {
				offspring = 1
			}
		}
		for j := 0; j < offspring; j++ {
			outGuides[written] = g
			outPhenotypes[written] = p
			written++
		}
	}
	return written
}

// growToTarget repeats Grow rounds until the population reaches target,
// returning the grown population and the number of doubling rounds it
// took. Each round must strictly increase the population; a flat or
// shrinking round fails with ErrGrowthStalled rather than looping.
func growToTarget(pop Population, target int, src rand.Source) (Population, int, error) {
	doublings := 0
	for pop.Len() < target {
		outGuides := make([]int, growBufferFactor*pop.Len())
		outPhenotypes := make([]float64, growBufferFactor*pop.Len())
		n := Grow(pop, outGuides, outPhenotypes, src)
		if n <= pop.Len() {
			return Population{}, doublings, fmt.Errorf(
				"%w: %d cells after round %d, down from %d", ErrGrowthStalled, n, doublings+1, pop.Len())
		}
		pop = Population{Guides: outGuides[:n], Phenotypes: outPhenotypes[:n]}
		doublings++
	}
	return pop, doublings, nil
}
