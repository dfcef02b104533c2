package crispulator

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func Test_Sequence(t *testing.T) {
	lib := NewLibrary(testGuides(make([]float64, 4), NoPhenotype), Knockdown{})

	// the sorted bin only kept cells of guides 0 and 1
	bin := Population{
		Guides:     []int{0, 0, 0, 1},
		Phenotypes: []float64{0, 0, 0, 0},
	}
	tables, err := Sequence(lib, map[string]Population{"bin1": bin}, 10, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	table := tables["bin1"]
	if len(table.Rows) != lib.NumGuides() {
		t.Fatalf("got %d rows, want one per guide (%d)", len(table.Rows), lib.NumGuides())
	}

	var total float64
	for _, r := range table.Rows {
		total += r.Count
	}
	if want := float64(10 * lib.NumGuides()); total != want {
		t.Errorf("total reads = %v, want %v", total, want)
	}

	// guides absent from the bin still get (zero count) rows
	for _, r := range table.Rows[2:] {
		if r.Count != 0 {
			t.Errorf("guide %d count = %v, want 0", r.Guide, r.Count)
		}
	}
}

func Test_Sequence_errors(t *testing.T) {
	lib := NewLibrary(testGuides(make([]float64, 2), NoPhenotype), Knockdown{})

	tests := []struct {
		name  string
		bins  map[string]Population
		depth int
	}{
		{"zero depth", map[string]Population{"bin1": flatPop(5, 0, 0)}, 0},
		{"empty bin", map[string]Population{"bin1": {}}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sequence(lib, tt.bins, tt.depth, rand.NewSource(1))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Sequence error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}
