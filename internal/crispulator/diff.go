package crispulator

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// pseudocount is added to every raw read count before normalization so
// zero-count guides survive the log2 downstream.
const pseudocount = 0.5

// DifferencesBetweenBins normalizes every bin's raw counts against its
// negative controls, aligns the bins by guide ID, and derives each
// guide's log2 fold change of every bin against firstBin, then
// aggregates lastBin's fold changes into per-gene effect sizes and
// significance. The guide table keeps one row per library guide; the
// gene table has one row per distinct (gene, behavior, class) group
// among non-negative-control guides.
//
// Groups of fewer than ~2 guides still get a p-value from the rank test
// but it carries little information; treat them as low-confidence.
func DifferencesBetweenBins(tables map[string]CountTable, firstBin, lastBin string) (GuideTable, GeneTable, error) {
	if _, ok := tables[firstBin]; !ok {
		return GuideTable{}, GeneTable{}, fmt.Errorf("%w: first bin %q", ErrMissingBin, firstBin)
	}
	if _, ok := tables[lastBin]; !ok {
		return GuideTable{}, GeneTable{}, fmt.Errorf("%w: last bin %q", ErrMissingBin, lastBin)
	}

	// firstBin anchors the column ordering; the rest follow by name
	bins := []string{firstBin}
	for name := range tables {
		if name != firstBin {
			bins = append(bins, name)
		}
	}
	sort.Strings(bins[1:])

	norms := make(map[string]normalized, len(bins))
	for _, name := range bins {
		n, err := normalizeBin(tables[name])
		if err != nil {
			return GuideTable{}, GeneTable{}, err
		}
		norms[name] = n
	}

	base := norms[firstBin]
	rows := make([]GuideRow, len(base.rows))
	for i, r := range base.rows {
		rows[i] = GuideRow{
			Guide:    r.Guide,
			Gene:     r.Gene,
			Behavior: r.Behavior,
			Class:    r.Class,
			Stats:    make([]BinStats, 0, len(bins)),
			Log2FC:   make([]float64, 0, len(bins)-1),
		}
	}
	for bi, name := range bins {
		n := norms[name]
		if len(n.rows) != len(base.rows) {
			return GuideTable{}, GeneTable{}, fmt.Errorf(
				"%w: bin %q has %d guides, bin %q has %d", ErrInvalidConfiguration, name, len(n.rows), firstBin, len(base.rows))
		}
		for i := range rows {
			if n.rows[i].Guide != base.rows[i].Guide {
				return GuideTable{}, GeneTable{}, fmt.Errorf(
					"%w: bin %q guide %d does not align with bin %q", ErrInvalidConfiguration, name, n.rows[i].Guide, firstBin)
			}
			rows[i].Stats = append(rows[i].Stats, BinStats{
				Count:   n.rows[i].Count,
				Freq:    n.freqs[i],
				RelFreq: n.relFreqs[i],
			})
			if bi > 0 {
				rows[i].Log2FC = append(rows[i].Log2FC, math.Log2(n.relFreqs[i]/base.relFreqs[i]))
			}
		}
	}

	guides := GuideTable{Bins: bins, Rows: rows}
	genes, err := geneStats(guides, lastBin)
	if err != nil {
		return GuideTable{}, GeneTable{}, err
	}
	return guides, genes, nil
}

// normalized is one bin's per-guide statistics after frequency
// normalization and negative-control scaling. rows keep the raw counts;
// rows, freqs, and relFreqs are parallel, sorted by guide ID.
type normalized struct {
	rows     []CountRow
	freqs    []float64
	relFreqs []float64
}

// normalizeBin turns pseudocounted counts into frequencies, then scales
// every frequency by the bin's median negative-control frequency to
// cancel bin-to-bin depth and composition differences. The pseudocount
// only enters the frequency math; the raw counts pass through.
func normalizeBin(t CountTable) (normalized, error) {
	rows := append([]CountRow(nil), t.Rows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Guide < rows[j].Guide })

	var total float64
	for _, r := range rows {
		total += r.Count + pseudocount
	}

	freqs := make([]float64, len(rows))
	for i, r := range rows {
		freqs[i] = (r.Count + pseudocount) / total
	}

	var negFreqs []float64
	for i, r := range rows {
		if r.Class == NegControl {
			negFreqs = append(negFreqs, freqs[i])
		}
	}
	if len(negFreqs) == 0 {
		return normalized{}, fmt.Errorf("%w: bin %q", ErrNoNegativeControls, t.Bin)
	}
	sort.Float64s(negFreqs)
	baseline := median(negFreqs)

	relFreqs := make([]float64, len(rows))
	for i, f := range freqs {
		relFreqs[i] = f / baseline
	}
	return normalized{rows: rows, freqs: freqs, relFreqs: relFreqs}, nil
}

// median of an already-sorted slice, averaging the middle pair for even
// lengths. gonum's Quantile kinds don't implement the conventional
// mid-point median.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// geneKey partitions guides for gene-level aggregation.
type geneKey struct {
	gene     int
	behavior Behavior
	class    Class
}

// geneStats aggregates lastBin's log2 fold changes per (gene, behavior,
// class) group: each group's mean effect plus a Mann-Whitney U test of
// its fold changes against the full negative-control population.
// Negative-control guides only ever appear as the comparison population.
func geneStats(guides GuideTable, lastBin string) (GeneTable, error) {
	fcIdx := -1
	for i, name := range guides.Bins[1:] {
		if name == lastBin {
			fcIdx = i
		}
	}
	if fcIdx == -1 {
		return GeneTable{}, fmt.Errorf("%w: no fold-change column for bin %q", ErrMissingBin, lastBin)
	}

	var negFCs []float64
	groups := make(map[geneKey][]float64)
	keys := make([]geneKey, 0)
	for _, r := range guides.Rows {
		fc := r.Log2FC[fcIdx]
		if r.Class == NegControl {
			negFCs = append(negFCs, fc)
			continue
		}
		k := geneKey{gene: r.Gene, behavior: r.Behavior, class: r.Class}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], fc)
	}
	if len(negFCs) == 0 {
		return GeneTable{}, fmt.Errorf("%w: gene aggregation", ErrNoNegativeControls)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].gene != keys[j].gene {
			return keys[i].gene < keys[j].gene
		}
		if keys[i].behavior != keys[j].behavior {
			return keys[i].behavior < keys[j].behavior
		}
		return keys[i].class < keys[j].class
	})

	out := GeneTable{Rows: make([]GeneRow, 0, len(keys))}
	for _, k := range keys {
		fcs := groups[k]
		mean := stat.Mean(fcs, nil)
		pvalue := -math.Log10(rankTestP(fcs, negFCs))
		out.Rows = append(out.Rows, GeneRow{
			Gene:         k.gene,
			Behavior:     k.behavior,
			Class:        k.class,
			N:            len(fcs),
			Mean:         mean,
			AbsMean:      math.Abs(mean),
			PValue:       pvalue,
			PvalMeanProd: mean * pvalue,
		})
	}
	return out, nil
}

// rankTestP is the two-sided Mann-Whitney U p-value of fcs against the
// negative-control fold changes. Degenerate samples (all ties, empty
// groups) fall back to p = 1: no evidence of a shift, not an error.
func rankTestP(fcs, negFCs []float64) float64 {
	res, err := stats.MannWhitneyUTest(fcs, negFCs, stats.LocationDiffers)
	if err != nil {
		return 1
	}
	return res.P
}
