package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// FragmentDist gives the relative probability of a sonication fragment
// having the given length. It only needs to be correct up to a constant
// factor; lengths outside the supported range must return 0.
type FragmentDist func(length int) float64

// NormalFragmentDist returns the default fragment length distribution: a
// normal density centered at mean with sd (max-min)/4, truncated to
// [min, max].
func NormalFragmentDist(min, mean, max int) FragmentDist {
	n := distuv.Normal{Mu: float64(mean), Sigma: float64(max-min) / 4}
	return func(length int) float64 {
		if length < min || length > max {
			return 0
		}
		return n.Prob(float64(length))
	}
}

// FragmentKernel is the convolution kernel that smears binding-site density
// into sequenced-fragment density. Probs[d] is the probability that a read
// anchor lands d bases away from the density mass it derives from; it sums
// to 1. Pad is the number of zeros prepended before convolution, shifting
// the kernel support by half the binding length so that reads straddle the
// site rather than start on top of it.
type FragmentKernel struct {
	Probs []float64
	Pad   int
}

// Len returns the padded kernel length used for convolution.
func (k *FragmentKernel) Len() int { return k.Pad + len(k.Probs) }

func (k *FragmentKernel) padded() []float64 {
	out := make([]float64, k.Len())
	copy(out[k.Pad:], k.Probs)
	return out
}

// NewFragmentKernel estimates the kernel by Monte Carlo: it draws
// opts.KernelSamples fragment lengths (minus the binding length) weighted
// by dist, then the same number of within-fragment relative offsets from a
// Beta(2,2) density, and histograms round(length*offset). All length draws
// happen before all offset draws, so the consumed random stream is fixed
// for a given seed.
func NewFragmentKernel(rnd *rand.Rand, dist FragmentDist, opts Opts) (*FragmentKernel, error) {
	weights := make([]float64, opts.FragmentMax-opts.FragmentMin+1)
	total := 0.0
	for i := range weights {
		w := dist(opts.FragmentMin + i)
		if w < 0 || math.IsNaN(w) {
			return nil, parameterErrorf("fragment-dist", "negative or NaN probability at length %d", opts.FragmentMin+i)
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil, parameterErrorf("fragment-dist", "zero mass on [%d, %d]", opts.FragmentMin, opts.FragmentMax)
	}

	sizes := distuv.NewCategorical(weights, rnd)
	offsets := distuv.Beta{Alpha: 2, Beta: 2, Src: rnd}

	spans := make([]float64, opts.KernelSamples)
	for i := range spans {
		spans[i] = float64(opts.FragmentMin-opts.BindingLength) + sizes.Rand()
	}
	counts := make([]float64, opts.FragmentMax-opts.BindingLength+1)
	for _, span := range spans {
		d := int(math.Round(span * offsets.Rand()))
		counts[d]++
	}
	// Drop the unreachable tail so Probs covers exactly the achievable
	// offset range, then normalize to a unit kernel.
	last := len(counts) - 1
	for last > 0 && counts[last] == 0 {
		last--
	}
	counts = counts[:last+1]
	n := float64(opts.KernelSamples)
	for i := range counts {
		counts[i] /= n
	}
	return &FragmentKernel{Probs: counts, Pad: opts.BindingLength / 2}, nil
}
