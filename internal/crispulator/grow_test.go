package crispulator

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

// flatPop is n cells of one guide at one phenotype.
func flatPop(n int, guide int, phenotype float64) Population {
	pop := Population{
		Guides:     make([]int, n),
		Phenotypes: make([]float64, n),
	}
	for i := range pop.Guides {
		pop.Guides[i] = guide
		pop.Phenotypes[i] = phenotype
	}
	return pop
}

func Test_Grow(t *testing.T) {
	tests := []struct {
		name      string
		phenotype float64
		wantPer   int // exact offspring per cell for degenerate phenotypes
	}{
		{"neutral cells double", 0, 2},
		{"fully positive cells triple", 1, 3},
		{"fully negative cells stall at one", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := flatPop(10, 3, tt.phenotype)
			outGuides := make([]int, growBufferFactor*pop.Len())
			outPhenotypes := make([]float64, growBufferFactor*pop.Len())

			n := Grow(pop, outGuides, outPhenotypes, rand.NewSource(1))
			if n != tt.wantPer*pop.Len() {
				t.Fatalf("Grow wrote %d cells, want %d", n, tt.wantPer*pop.Len())
			}
			for i := 0; i < n; i++ {
				if outGuides[i] != 3 || outPhenotypes[i] != tt.phenotype {
					t.Fatalf("descendant %d = (%d, %v), want (3, %v)", i, outGuides[i], outPhenotypes[i], tt.phenotype)
				}
			}
		})
	}
}

func Test_growToTarget(t *testing.T) {
	pop, doublings, err := growToTarget(flatPop(100, 0, 0), 1000, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if pop.Len() < 1000 {
		t.Errorf("grew to %d cells, want >= 1000", pop.Len())
	}

	// neutral cells double exactly: 100 -> 200 -> 400 -> 800 -> 1600
	if doublings != 4 {
		t.Errorf("doublings = %d, want 4", doublings)
	}
	if pop.Len() != 1600 {
		t.Errorf("grew to %d cells, want 1600 under pure doubling", pop.Len())
	}
}

func Test_growToTarget_stalled(t *testing.T) {
	// every cell leaves a single descendant, so the population never grows
	_, _, err := growToTarget(flatPop(50, 0, -1), 100, rand.NewSource(1))
	if !errors.Is(err, ErrGrowthStalled) {
		t.Errorf("growToTarget error = %v, want ErrGrowthStalled", err)
	}
}
