package test

import (
	"math"
	"testing"

	"github.com/jjtimmons/crispulator/config"
	"github.com/jjtimmons/crispulator/internal/crispulator"
)

// small library/screen settings so the end to end runs stay fast
func testConfig(screenType string) config.Config {
	return config.Config{
		Seed: 42,
		Library: config.LibraryConfig{
			NumGenes:       20,
			GuidesPerGene:  5,
			Perturbation:   "knockdown",
			FracIncreasing: 0.2,
			FracDecreasing: 0.2,
			FracNegControl: 0.2,
			FracSigmoidal:  0.25,
			FreqSkew:       0.25,
		},
		Screen: config.ScreenConfig{
			Type:                     screenType,
			Representation:           50,
			BottleneckRepresentation: 50,
			MOI:                      0.25,
			Noise:                    0.01,
			NumBottlenecks:           2,
			SortNoise:                0.5,
			Bins: []config.BinConfig{
				{Name: "bin1", Lo: 0, Hi: 1.0 / 3.0},
				{Name: "bin2", Lo: 2.0 / 3.0, Hi: 1},
			},
		},
		Sequencing: config.SequencingConfig{Depth: 100},
		Analysis:   config.AnalysisConfig{FirstBin: "bin1", LastBin: "bin2"},
	}
}

func Test_Run(t *testing.T) {
	for _, screenType := range []string{"facs", "growth"} {
		t.Run(screenType, func(t *testing.T) {
			c := testConfig(screenType)
			out, err := crispulator.Run(c)
			if err != nil {
				t.Fatal(err)
			}

			numGuides := c.Library.NumGenes * c.Library.GuidesPerGene
			if len(out.Guides.Rows) != numGuides {
				t.Fatalf("guide table has %d rows, want one per guide (%d)", len(out.Guides.Rows), numGuides)
			}
			if len(out.Genes.Rows) == 0 {
				t.Fatal("gene table is empty")
			}

			for _, r := range out.Guides.Rows {
				for _, fc := range r.Log2FC {
					if math.IsNaN(fc) || math.IsInf(fc, 0) {
						t.Fatalf("guide %d log2fc = %v, want finite", r.Guide, fc)
					}
				}
			}
			for _, r := range out.Genes.Rows {
				if r.Class.String() == "negcontrol" {
					t.Errorf("gene %d is a negative control, want them excluded", r.Gene)
				}
				if r.N < 1 {
					t.Errorf("gene %d aggregates %d guides, want at least 1", r.Gene, r.N)
				}
			}

			if out.Screen != screenType {
				t.Errorf("report screen = %q, want %q", out.Screen, screenType)
			}
		})
	}
}
