package crispulator

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// Sequence simulates sequencing every bin to depth reads per guide:
// reads are drawn from the bin's cells uniformly with replacement and
// tallied by guide. Every library guide gets a row in every bin's table,
// zero-count guides included, so downstream tables never drop guides.
// No sequencing-error or alignment modeling is performed.
func Sequence(lib *Library, bins map[string]Population, depth int, src rand.Source) (map[string]CountTable, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: sequencing depth %d must be positive", ErrInvalidConfiguration, depth)
	}

	// bins are sequenced in name order so a seeded run is reproducible
	names := make([]string, 0, len(bins))
	for name := range bins {
		names = append(names, name)
	}
	sort.Strings(names)

	rnd := rand.New(src)
	tables := make(map[string]CountTable, len(bins))
	for _, name := range names {
		cells := bins[name]
		if cells.Len() == 0 {
			return nil, fmt.Errorf("%w: bin %q has no cells to sequence", ErrInvalidConfiguration, name)
		}

		counts := make([]float64, lib.NumGuides())
		reads := depth * lib.NumGuides()
		for i := 0; i < reads; i++ {
			counts[cells.Guides[rnd.Intn(cells.Len())]]++
		}

		rows := make([]CountRow, lib.NumGuides())
		for i, g := range lib.Guides {
			rows[i] = CountRow{
				Guide:    g.ID,
				Gene:     g.Gene,
				Behavior: g.Behavior,
				Class:    g.Class,
				Count:    counts[i],
			}
		}
		tables[name] = CountTable{Bin: name, Rows: rows}
	}
	return tables, nil
}
