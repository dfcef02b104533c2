package crispulator

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// LibraryDesign configures library construction: how many genes, how
// many guides target each one, how the genes split across phenotype
// classes, and how skewed the synthesized guide pool is.
type LibraryDesign struct {
	NumGenes      int
	GuidesPerGene int

	// FracIncreasing, FracDecreasing, and FracNegControl split the
	// genes across screen classes; the remainder gets no phenotype
	FracIncreasing float64
	FracDecreasing float64
	FracNegControl float64

	// FracSigmoidal is the share of guides with a sigmoidal response
	FracSigmoidal float64

	// FreqSkew is the lognormal sigma of the synthesized pool's
	// per-guide abundance; 0 gives a perfectly uniform library
	FreqSkew float64
}

// DefaultLibraryDesign mirrors a typical genome-scale pooled library:
// 500 genes at 5 guides each, a tenth of the genes in each phenotype
// class, and mild synthesis skew.
func DefaultLibraryDesign() LibraryDesign {
	return LibraryDesign{
		NumGenes:       500,
		GuidesPerGene:  5,
		FracIncreasing: 0.1,
		FracDecreasing: 0.1,
		FracNegControl: 0.1,
		FracSigmoidal:  0.25,
		FreqSkew:       0.25,
	}
}

// DefaultKnockoutEfficacy models a mostly effective nuclease: 90% of
// cells get a complete knockout, the rest a partial edit.
func DefaultKnockoutEfficacy(src rand.Source) Sampler {
	return NewMixture(
		[]float64{0.9, 0.1},
		[]Sampler{
			Point{Value: -1},
			TruncNormal{Mu: 0, Sigma: 0.5, Lo: -1, Hi: 1, Src: src},
		},
		src,
	)
}

// ConstructLibrary samples a guide library from the design. Each gene
// draws a screen class and a theoretical phenotype from its class's
// distribution; each of its guides inherits the gene's phenotype with
// its own response behavior. The returned Sampler is the categorical
// guide-frequency distribution of the synthesized pool, for seeding
// transfections.
func ConstructLibrary(d LibraryDesign, p Perturbation, src rand.Source) (*Library, Sampler, error) {
	if d.NumGenes <= 0 || d.GuidesPerGene <= 0 {
		return nil, nil, fmt.Errorf("%w: library needs at least one gene and one guide per gene", ErrInvalidConfiguration)
	}
	if d.FracNegControl <= 0 {
		return nil, nil, fmt.Errorf("%w: library needs negative control guides", ErrInvalidConfiguration)
	}
	fracNone := 1 - d.FracIncreasing - d.FracDecreasing - d.FracNegControl
	if fracNone < 0 {
		return nil, nil, fmt.Errorf("%w: class fractions sum past 1", ErrInvalidConfiguration)
	}

	// weights are index-aligned with the Class constants
	classPick := distuv.NewCategorical([]float64{d.FracIncreasing, d.FracDecreasing, fracNone, d.FracNegControl}, src)
	phenotypes := map[Class]Sampler{
		Increasing:  TruncNormal{Mu: 0.55, Sigma: 0.2, Lo: 0.1, Hi: 1, Src: src},
		Decreasing:  TruncNormal{Mu: -0.55, Sigma: 0.2, Lo: -1, Hi: -0.1, Src: src},
		NoPhenotype: Point{},
		NegControl:  Point{},
	}
	behaviorPick := distuv.Bernoulli{P: d.FracSigmoidal, Src: src}

	guides := make([]Barcode, 0, d.NumGenes*d.GuidesPerGene)
	for gene := 0; gene < d.NumGenes; gene++ {
		class := Class(classPick.Rand())
		phenotype := phenotypes[class].Rand()
		for j := 0; j < d.GuidesPerGene; j++ {
			behavior := Linear
			if behaviorPick.Rand() == 1 {
				behavior = Sigmoidal
			}
			guides = append(guides, Barcode{
				Gene:      gene,
				Phenotype: phenotype,
				Behavior:  behavior,
				Class:     class,
			})
		}
	}
	lib := NewLibrary(guides, p)

	// the synthesized pool is near-uniform with lognormal batch skew
	weights := make([]float64, len(guides))
	skew := distuv.LogNormal{Mu: 0, Sigma: d.FreqSkew, Src: src}
	for i := range weights {
		if d.FreqSkew > 0 {
			weights[i] = skew.Rand()
		} else {
			weights[i] = 1
		}
	}
	return lib, distuv.NewCategorical(weights, src), nil
}
