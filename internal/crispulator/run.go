package crispulator

import (
	"fmt"
	"time"

	"github.com/jjtimmons/crispulator/config"
	"golang.org/x/exp/rand"
)

// Run simulates one full screen from settings: construct the library,
// transfect it, select (by sorting or growth), sequence each bin, and
// analyze the counts against the run's ground truth. Every random draw
// comes from a single stream seeded with c.Seed, so a run is
// reproducible and independent runs can execute in parallel.
func Run(c config.Config) (*Output, error) {
	start := time.Now()
	src := rand.NewSource(c.Seed)

	pert, err := perturbationFrom(c.Library.Perturbation, src)
	if err != nil {
		return nil, err
	}
	setup, err := setupFrom(c.Screen)
	if err != nil {
		return nil, err
	}

	design := LibraryDesign{
		NumGenes:       c.Library.NumGenes,
		GuidesPerGene:  c.Library.GuidesPerGene,
		FracIncreasing: c.Library.FracIncreasing,
		FracDecreasing: c.Library.FracDecreasing,
		FracNegControl: c.Library.FracNegControl,
		FracSigmoidal:  c.Library.FracSigmoidal,
		FreqSkew:       c.Library.FreqSkew,
	}
	lib, guideDist, err := ConstructLibrary(design, pert, src)
	if err != nil {
		return nil, err
	}

	pop, freqs, doublings, err := Transfect(lib, setup, guideDist, src)
	if err != nil {
		return nil, err
	}
	lib = lib.WithFrequencies(freqs)
	stderr.Printf("transfected %d cells across %d guides", pop.Len(), lib.NumGuides())

	var bins map[string]Population
	switch s := setup.(type) {
	case *FacsScreen:
		bins, err = FacsSort(pop, s, src)
		if err != nil {
			return nil, err
		}
	case *GrowthScreen:
		selected, serr := GrowthAssay(pop, s, lib.NumGuides(), src)
		if serr != nil {
			return nil, serr
		}
		bins = map[string]Population{
			c.Analysis.FirstBin: pop,
			c.Analysis.LastBin:  selected,
		}
	}

	tables, err := Sequence(lib, bins, c.Sequencing.Depth, src)
	if err != nil {
		return nil, err
	}

	guides, genes, err := DifferencesBetweenBins(tables, c.Analysis.FirstBin, c.Analysis.LastBin)
	if err != nil {
		return nil, err
	}

	return &Output{
		Time:      time.Now().Format("2006-01-02 15:04:05"),
		Execution: time.Since(start).Seconds(),
		Screen:    c.Screen.Type,
		Seed:      c.Seed,
		NumGenes:  c.Library.NumGenes,
		NumGuides: lib.NumGuides(),
		Doublings: doublings,
		Guides:    guides,
		Genes:     genes,
	}, nil
}

// perturbationFrom builds the library's perturbation model from settings.
func perturbationFrom(name string, src rand.Source) (Perturbation, error) {
	switch name {
	case "knockdown":
		return Knockdown{}, nil
	case "knockout":
		return Knockout{Efficacy: DefaultKnockoutEfficacy(src)}, nil
	}
	return nil, fmt.Errorf("%w: unknown perturbation %q", ErrInvalidConfiguration, name)
}

// setupFrom builds the screen design from settings.
func setupFrom(sc config.ScreenConfig) (ScreenSetup, error) {
	switch sc.Type {
	case "facs":
		bins := make([]BinRange, len(sc.Bins))
		for i, b := range sc.Bins {
			bins[i] = BinRange{Name: b.Name, Lo: b.Lo, Hi: b.Hi}
		}
		return &FacsScreen{
			Representation:           sc.Representation,
			BottleneckRepresentation: sc.BottleneckRepresentation,
			MOI:                      sc.MOI,
			SortNoise:                sc.SortNoise,
			Bins:                     bins,
		}, nil
	case "growth":
		return &GrowthScreen{
			Representation:           sc.Representation,
			BottleneckRepresentation: sc.BottleneckRepresentation,
			MOI:                      sc.MOI,
			Noise:                    sc.Noise,
			NumBottlenecks:           sc.NumBottlenecks,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown screen type %q", ErrInvalidConfiguration, sc.Type)
}
