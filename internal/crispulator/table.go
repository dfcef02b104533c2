package crispulator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CountRow is one guide's raw sequencing readout in a single bin.
type CountRow struct {
	Guide    int      `json:"guide"`
	Gene     int      `json:"gene"`
	Behavior Behavior `json:"behavior"`
	Class    Class    `json:"class"`
	Count    float64  `json:"counts"`
}

// CountTable is one sequencing bin's raw counts, one row per guide.
type CountTable struct {
	Bin  string     `json:"bin"`
	Rows []CountRow `json:"rows"`
}

// BinStats are one guide's normalized statistics within one bin.
type BinStats struct {
	// Count is the guide's raw read count in the bin
	Count float64 `json:"counts"`

	// Freq is the guide's share of the bin's reads
	Freq float64 `json:"freq"`

	// RelFreq is Freq over the bin's median negative-control Freq
	RelFreq float64 `json:"relfreq"`
}

// GuideRow is one guide's analysis result across every bin. Stats is
// parallel to its GuideTable's Bins; Log2FC is parallel to Bins[1:] and
// holds each bin's log2 fold change against the first bin.
type GuideRow struct {
	Guide    int        `json:"guide"`
	Gene     int        `json:"gene"`
	Behavior Behavior   `json:"behavior"`
	Class    Class      `json:"class"`
	Stats    []BinStats `json:"stats"`
	Log2FC   []float64  `json:"log2fc"`
}

// GuideTable is the per-guide analysis output: one row per library
// guide, bins ordered with the comparison base bin first.
type GuideTable struct {
	Bins []string   `json:"bins"`
	Rows []GuideRow `json:"rows"`
}

// GeneRow is one (gene, behavior, class) group's aggregate effect and
// significance.
type GeneRow struct {
	Gene     int      `json:"gene"`
	Behavior Behavior `json:"behavior"`
	Class    Class    `json:"class"`

	// N is the number of guides in the group
	N int `json:"n"`

	// Mean is the group's average log2 fold change in the last bin
	Mean float64 `json:"mean"`

	// AbsMean is |Mean|
	AbsMean float64 `json:"absmean"`

	// PValue is -log10 of the Mann-Whitney U p-value of the group's
	// fold changes against the negative controls; higher is more
	// significant
	PValue float64 `json:"pvalue"`

	// PvalMeanProd is Mean * PValue, a combined ranking score
	PvalMeanProd float64 `json:"pvalmeanprod"`
}

// GeneTable is the per-gene analysis output: one row per distinct
// (gene, behavior, class) group among non-negative-control guides.
type GeneTable struct {
	Rows []GeneRow `json:"rows"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCountTable writes one bin's raw counts as CSV.
func WriteCountTable(w io.Writer, t CountTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"guide", "gene", "behavior", "class", "counts"}); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{
			strconv.Itoa(r.Guide),
			strconv.Itoa(r.Gene),
			r.Behavior.String(),
			r.Class.String(),
			formatFloat(r.Count),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCountTable parses one bin's raw counts from CSV. The bin name is
// caller-assigned, usually from the file's name.
func ReadCountTable(r io.Reader, bin string) (CountTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return CountTable{}, fmt.Errorf("bin %q: %w", bin, err)
	}
	if len(records) < 2 {
		return CountTable{}, fmt.Errorf("%w: bin %q count table has no rows", ErrInvalidConfiguration, bin)
	}

	rows := make([]CountRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 5 {
			return CountTable{}, fmt.Errorf("%w: bin %q row %d has %d columns, want 5", ErrInvalidConfiguration, bin, i+1, len(rec))
		}

		var row CountRow
		if row.Guide, err = strconv.Atoi(rec[0]); err == nil {
			row.Gene, err = strconv.Atoi(rec[1])
		}
		if err == nil {
			row.Behavior, err = ParseBehavior(rec[2])
		}
		if err == nil {
			row.Class, err = ParseClass(rec[3])
		}
		if err == nil {
			row.Count, err = strconv.ParseFloat(rec[4], 64)
		}
		if err != nil {
			return CountTable{}, fmt.Errorf("%w: bin %q row %d: %v", ErrInvalidConfiguration, bin, i+1, err)
		}
		rows = append(rows, row)
	}
	return CountTable{Bin: bin, Rows: rows}, nil
}

// WriteGuideTable writes the per-guide analysis as CSV, with each bin's
// statistics in bin-suffixed columns.
func WriteGuideTable(w io.Writer, t GuideTable) error {
	header := []string{"guide", "gene", "behavior", "class"}
	for _, bin := range t.Bins {
		header = append(header, "counts_"+bin, "freq_"+bin, "relfreq_"+bin)
	}
	for _, bin := range t.Bins[1:] {
		header = append(header, "log2fc_"+bin)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{
			strconv.Itoa(r.Guide),
			strconv.Itoa(r.Gene),
			r.Behavior.String(),
			r.Class.String(),
		}
		for _, s := range r.Stats {
			rec = append(rec, formatFloat(s.Count), formatFloat(s.Freq), formatFloat(s.RelFreq))
		}
		for _, fc := range r.Log2FC {
			rec = append(rec, formatFloat(fc))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGeneTable writes the per-gene analysis as CSV.
func WriteGeneTable(w io.Writer, t GeneTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"gene", "behavior", "class", "n", "mean", "absmean", "pvalue", "pvalmeanprod"}); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{
			strconv.Itoa(r.Gene),
			r.Behavior.String(),
			r.Class.String(),
			strconv.Itoa(r.N),
			formatFloat(r.Mean),
			formatFloat(r.AbsMean),
			formatFloat(r.PValue),
			formatFloat(r.PvalMeanProd),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
