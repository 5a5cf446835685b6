package sim

import (
	"encoding/binary"
	"sort"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"golang.org/x/exp/rand"
)

// Result carries the outputs of one simulation run. The intermediate stages
// are retained so callers can inspect or plot them; Forward and Reverse are
// the 0-based read start positions, already filtered so a ReadLength read
// fits inside the reference.
type Result struct {
	Regions []Region
	Density []float64
	Kernel  *FragmentKernel
	Reads   *ReadDensity
	Forward []int
	Reverse []int
	Stats   Stats
}

// Simulate runs the full pipeline over a reference of the given length:
// region chain, binding-site density, fragment convolution, read sampling.
//
// The run is deterministic in opts: a single generator seeded from
// opts.Seed is threaded through all stages, and the draw order is fixed
// (initial state, then per region weight and transition, then kernel
// fragment lengths, kernel offsets, forward positions, reverse positions).
//
// A realization with no Binding region cannot support enrichment analysis
// downstream, so it is discarded and retried with a seed derived via
// DeriveSeed, up to opts.MaxAttempts times; exhaustion returns a
// *DegenerateRealizationError.
func Simulate(refLength int, opts Opts) (*Result, error) {
	if err := opts.Validate(refLength); err != nil {
		return nil, err
	}
	seed := opts.Seed
	for attempt := 1; ; attempt++ {
		rnd := rand.New(rand.NewSource(seed))
		regions := newRegionChain(rnd, opts).generate(refLength)
		if countKind(regions, Binding) > 0 {
			return finish(rnd, regions, refLength, opts, attempt)
		}
		if attempt >= opts.MaxAttempts {
			return nil, &DegenerateRealizationError{
				Attempts: attempt,
				Reason: "no binding region produced; binding-prob or background-length is likely too extreme for this reference length",
			}
		}
		log.Debug.Printf("sim: realization %d of length-%d reference produced no binding regions, reseeding", attempt, refLength)
		seed = DeriveSeed(opts.Seed, attempt)
	}
}

// BindingSite pins a binding region at a known location, for simulations
// with ground truth. Start is the 0-based start of the binding region (of
// length Opts.BindingLength). A zero Weight means "draw from the usual
// Pareto distribution".
type BindingSite struct {
	Start  int
	Weight float64
}

// SimulateWithSites is Simulate with the Markov chain replaced by a fixed
// layout: one Binding region per site, Background regions (of at most
// BackgroundLength) tiling the gaps. Background and unset Binding weights
// are still drawn, so the run remains stochastic in the weights and reads
// but not in the site placement. Sites must fit in the reference and be at
// least BindingLength apart.
func SimulateWithSites(refLength int, sites []BindingSite, opts Opts) (*Result, error) {
	if err := opts.Validate(refLength); err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, parameterErrorf("binding-sites", "at least one site is required")
	}
	sorted := make([]BindingSite, len(sites))
	copy(sorted, sites)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	rnd := rand.New(rand.NewSource(opts.Seed))
	chain := newRegionChain(rnd, opts)
	var regions []Region
	pos := 0
	for _, site := range sorted {
		if site.Start < pos {
			return nil, parameterErrorf("binding-sites", "site at %d overlaps the previous region ending at %d", site.Start, pos)
		}
		if site.Start+opts.BindingLength > refLength {
			return nil, parameterErrorf("binding-sites", "site at %d does not fit in reference of length %d", site.Start, refLength)
		}
		regions = appendBackground(regions, chain, pos, site.Start)
		reg := chain.emit(Binding, site.Start)
		if site.Weight > 0 {
			reg.Weight = site.Weight
		}
		regions = append(regions, reg)
		pos = reg.End()
	}
	regions = appendBackground(regions, chain, pos, refLength)
	if regions[len(regions)-1].Kind == Binding {
		regions = append(regions, chain.emit(Background, pos))
	}
	return finish(rnd, regions, refLength, opts, 1)
}

// appendBackground tiles [from, to) with Background regions of at most the
// configured background length.
func appendBackground(regions []Region, chain *regionChain, from, to int) []Region {
	for from < to {
		reg := chain.emit(Background, from)
		if reg.End() > to {
			reg.Length = to - from
		}
		regions = append(regions, reg)
		from = reg.End()
	}
	return regions
}

func finish(rnd *rand.Rand, regions []Region, refLength int, opts Opts, attempts int) (*Result, error) {
	density := RegionDensity(regions, refLength, opts.BindingLength)
	dist := NormalFragmentDist(opts.FragmentMin, opts.FragmentMean, opts.FragmentMax)
	kernel, err := NewFragmentKernel(rnd, dist, opts)
	if err != nil {
		return nil, err
	}
	reads := ConvolveReadDensity(density, kernel)
	forward, reverse, err := SampleReads(rnd, reads, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Regions: regions,
		Density: density,
		Kernel:  kernel,
		Reads:   reads,
		Forward: forward,
		Reverse: reverse,
		Stats: Stats{
			Attempts:          attempts,
			Regions:           len(regions),
			BindingRegions:    countKind(regions, Binding),
			BackgroundRegions: countKind(regions, Background),
			ForwardReads:      len(forward),
			ReverseReads:      len(reverse),
		},
	}, nil
}

// DeriveSeed deterministically derives a fresh seed from a base seed and a
// sequence number. It decorrelates retries and replicates from the base
// seed while keeping the whole experiment a function of it.
func DeriveSeed(seed uint64, n int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(n))
	return farm.Fingerprint64(buf[:])
}
