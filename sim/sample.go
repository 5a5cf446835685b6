package sim

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleReads draws opts.NReads read start positions per strand from the
// read densities, treated as unnormalized probability masses over
// [0, refLength). Draws are independent and with replacement; no spatial
// correlation between reads is modeled. All forward positions are drawn
// before any reverse position.
//
// Positions that cannot hold a full read inside the reference are zeroed
// out before sampling, so they can never be returned: a forward read at p
// covers [p, p+ReadLength), a reverse read at p covers (p-ReadLength, p].
func SampleReads(rnd *rand.Rand, dens *ReadDensity, opts Opts) (forward, reverse []int, err error) {
	refLength := len(dens.Forward)
	fwdMass := maskTail(dens.Forward, refLength-opts.ReadLength+1)
	revMass := maskHead(dens.Reverse, opts.ReadLength-1)
	if forward, err = samplePositions(rnd, fwdMass, opts.NReads, "forward"); err != nil {
		return nil, nil, err
	}
	if reverse, err = samplePositions(rnd, revMass, opts.NReads, "reverse"); err != nil {
		return nil, nil, err
	}
	return forward, reverse, nil
}

func samplePositions(rnd *rand.Rand, mass []float64, n int, strand string) ([]int, error) {
	total := 0.0
	for _, v := range mass {
		total += v
	}
	if total <= 0 {
		return nil, parameterErrorf("reads", "%s-strand density has no mass left after boundary filtering", strand)
	}
	cat := distuv.NewCategorical(mass, rnd)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = int(cat.Rand())
	}
	return positions, nil
}

// maskTail returns a copy of mass with every position >= limit zeroed.
func maskTail(mass []float64, limit int) []float64 {
	out := make([]float64, len(mass))
	if limit > 0 {
		copy(out, mass[:min(limit, len(mass))])
	}
	return out
}

// maskHead returns a copy of mass with every position < limit zeroed.
func maskHead(mass []float64, limit int) []float64 {
	out := make([]float64, len(mass))
	if limit < 0 {
		limit = 0
	}
	if limit < len(mass) {
		copy(out[limit:], mass[limit:])
	}
	return out
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
