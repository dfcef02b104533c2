package crispulator

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func Test_GrowthAssay(t *testing.T) {
	// equal starting shares of a strongly growing and a strongly dying guide
	pop := Population{}
	for i := 0; i < 500; i++ {
		pop.Guides = append(pop.Guides, 0)
		pop.Phenotypes = append(pop.Phenotypes, 0.5)
	}
	for i := 0; i < 500; i++ {
		pop.Guides = append(pop.Guides, 1)
		pop.Phenotypes = append(pop.Phenotypes, -0.5)
	}

	setup := &GrowthScreen{BottleneckRepresentation: 250, NumBottlenecks: 3}
	selected, err := GrowthAssay(pop, setup, 2, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if want := 250 * 2; selected.Len() != want {
		t.Fatalf("selected population = %d cells, want %d", selected.Len(), want)
	}

	counts := make([]int, 2)
	for _, g := range selected.Guides {
		counts[g]++
	}
	if counts[0] <= counts[1] {
		t.Errorf("growing guide has %d cells vs %d for the dying one, want enrichment", counts[0], counts[1])
	}
}

func Test_GrowthAssay_errors(t *testing.T) {
	pop := flatPop(10, 0, 0)

	if _, err := GrowthAssay(pop, &GrowthScreen{NumBottlenecks: -1}, 1, rand.NewSource(1)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("negative rounds error = %v, want ErrInvalidConfiguration", err)
	}

	// a dying population cannot regrow to the bottleneck target
	dying := flatPop(10, 0, -1)
	if _, err := GrowthAssay(dying, &GrowthScreen{BottleneckRepresentation: 100, NumBottlenecks: 1}, 1, rand.NewSource(1)); !errors.Is(err, ErrGrowthStalled) {
		t.Errorf("dying population error = %v, want ErrGrowthStalled", err)
	}
}
