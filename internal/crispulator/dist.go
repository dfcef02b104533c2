package crispulator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws one value from a distribution. The distuv distributions
// satisfy it directly; the types below fill the gaps distuv leaves.
type Sampler interface {
	Rand() float64
}

// Point is a distribution with all of its mass at a single value.
type Point struct {
	Value float64
}

// Rand returns the point's value.
func (p Point) Rand() float64 { return p.Value }

// TruncNormal is a Normal(Mu, Sigma) restricted to [Lo, Hi], sampled by
// rejection. distuv has no truncated normal of its own.
type TruncNormal struct {
	Mu, Sigma float64
	Lo, Hi    float64
	Src       rand.Source
}

// Rand draws until a sample lands inside [Lo, Hi].
func (t TruncNormal) Rand() float64 {
	n := distuv.Normal{Mu: t.Mu, Sigma: t.Sigma, Src: t.Src}
	for {
		if v := n.Rand(); t.Lo <= v && v <= t.Hi {
			return v
		}
	}
}

// Mixture draws from one of its component distributions, chosen by weight.
type Mixture struct {
	pick  distuv.Categorical
	parts []Sampler
}

// NewMixture pairs each component with its selection weight. Weights
// need not sum to 1.
func NewMixture(weights []float64, parts []Sampler, src rand.Source) Mixture {
	return Mixture{
		pick:  distuv.NewCategorical(weights, src),
		parts: parts,
	}
}

// Rand picks a component by weight and samples it.
func (m Mixture) Rand() float64 {
	return m.parts[int(m.pick.Rand())].Rand()
}
