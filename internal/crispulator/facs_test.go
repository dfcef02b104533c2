package crispulator

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func Test_FacsSort(t *testing.T) {
	// 50 dim cells of guide 0 and 50 bright cells of guide 1
	pop := Population{}
	for i := 0; i < 50; i++ {
		pop.Guides = append(pop.Guides, 0)
		pop.Phenotypes = append(pop.Phenotypes, -0.5)
	}
	for i := 0; i < 50; i++ {
		pop.Guides = append(pop.Guides, 1)
		pop.Phenotypes = append(pop.Phenotypes, 0.5)
	}

	setup := &FacsScreen{
		SortNoise: 0, // noiseless sorter separates the two populations exactly
		Bins: []BinRange{
			{Name: "low", Lo: 0, Hi: 0.3},
			{Name: "high", Lo: 0.7, Hi: 1},
		},
	}
	bins, err := FacsSort(pop, setup, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	// each gate collects exactly its quantile slice of the 100 cells
	low, high := bins["low"], bins["high"]
	if low.Len() != 30 || high.Len() != 30 {
		t.Fatalf("bin sizes = (%d, %d), want (30, 30)", low.Len(), high.Len())
	}
	for _, g := range low.Guides {
		if g != 0 {
			t.Errorf("low bin contains guide %d, want only guide 0", g)
		}
	}
	for _, g := range high.Guides {
		if g != 1 {
			t.Errorf("high bin contains guide %d, want only guide 1", g)
		}
	}
}

func Test_FacsSort_adjacentGatesPartition(t *testing.T) {
	// every readout ties, landing on the gates' shared boundary
	pop := flatPop(10, 0, 0)

	setup := &FacsScreen{
		SortNoise: 0,
		Bins: []BinRange{
			{Name: "low", Lo: 0, Hi: 0.5},
			{Name: "high", Lo: 0.5, Hi: 1},
		},
	}
	bins, err := FacsSort(pop, setup, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	low, high := bins["low"], bins["high"]
	if low.Len() != 5 || high.Len() != 5 {
		t.Errorf("bin sizes = (%d, %d), want (5, 5)", low.Len(), high.Len())
	}
	if total := low.Len() + high.Len(); total != pop.Len() {
		t.Errorf("gates collected %d cells from %d, want each cell in exactly one gate", total, pop.Len())
	}
}

func Test_FacsSort_errors(t *testing.T) {
	pop := flatPop(10, 0, 0)

	tests := []struct {
		name string
		pop  Population
		bins []BinRange
	}{
		{"no bins", pop, nil},
		{"inverted gate", pop, []BinRange{{Name: "b", Lo: 0.5, Hi: 0.2}}},
		{"gate past 1", pop, []BinRange{{Name: "b", Lo: 0.5, Hi: 1.2}}},
		{"no cells", Population{}, []BinRange{{Name: "b", Lo: 0, Hi: 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FacsSort(tt.pop, &FacsScreen{Bins: tt.bins}, rand.NewSource(1))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("FacsSort error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}
