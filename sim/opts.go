package sim

// Opts holds every tunable of the simulation. The zero value is not usable;
// start from DefaultOpts and override fields as needed.
type Opts struct {
	// Seed initializes the random generator for the whole run. Retries
	// after a degenerate realization derive fresh seeds from it, so the
	// outcome is still a pure function of Seed and the other fields.
	Seed uint64

	// BindingProb is the Background->Binding transition probability of the
	// region chain, and also the probability that the chain starts in the
	// Binding state. Binding->Background is always 1.
	BindingProb float64

	// BackgroundShape and BackgroundScale parameterize the Gamma
	// distribution of Background region weights.
	BackgroundShape float64
	BackgroundScale float64

	// BackgroundLength and BindingLength are the fixed lengths, in bases,
	// of Background and Binding regions.
	BackgroundLength int
	BindingLength    int

	// ParetoShape is the shape of the Pareto Type I distribution of
	// Binding region weights. Must be > 1 so the distribution has a mean.
	ParetoShape float64
	// Enrichment is the ratio of the mean Binding weight to the mean
	// Background weight.
	Enrichment float64

	// FragmentMin, FragmentMean and FragmentMax bound and center the
	// sonication fragment length distribution, in bases.
	FragmentMin  int
	FragmentMean int
	FragmentMax  int

	// KernelSamples is the number of (fragment length, offset) draws used
	// to estimate the fragment kernel.
	KernelSamples int

	// NReads is the number of read positions drawn per strand.
	NReads int
	// ReadLength is the fixed length of the downstream reads. Positions
	// that cannot hold a full read inside the reference are excluded
	// before sampling.
	ReadLength int

	// MaxAttempts bounds the number of region-chain realizations tried
	// before giving up with a DegenerateRealizationError.
	MaxAttempts int
}

// DefaultOpts is the recommended starting configuration: 500bp background
// regions with Gamma(1, 20) weights, 50bp binding sites with 5x mean
// enrichment, 150-250bp fragments, and 1e6 36bp reads per strand.
var DefaultOpts = Opts{
	Seed:             1,
	BindingProb:      0.05,
	BackgroundShape:  1,
	BackgroundScale:  20,
	BackgroundLength: 500,
	BindingLength:    50,
	ParetoShape:      1.5,
	Enrichment:       5,
	FragmentMin:      150,
	FragmentMean:     200,
	FragmentMax:      250,
	KernelSamples:    100000,
	NReads:           1000000,
	ReadLength:       36,
	MaxAttempts:      10,
}

// Validate checks Opts against the given reference length. All violations
// are reported as *ParameterError before any simulation work starts.
func (o Opts) Validate(refLength int) error {
	if refLength <= 0 {
		return parameterErrorf("refLength", "must be positive, got %d", refLength)
	}
	if o.BindingProb < 0 || o.BindingProb > 1 {
		return parameterErrorf("binding-prob", "must be in [0,1], got %g", o.BindingProb)
	}
	if o.BackgroundShape <= 0 {
		return parameterErrorf("background-shape", "must be positive, got %g", o.BackgroundShape)
	}
	if o.BackgroundScale <= 0 {
		return parameterErrorf("background-scale", "must be positive, got %g", o.BackgroundScale)
	}
	if o.BackgroundLength <= 0 {
		return parameterErrorf("background-length", "must be positive, got %d", o.BackgroundLength)
	}
	if o.BindingLength <= 0 {
		return parameterErrorf("binding-length", "must be positive, got %d", o.BindingLength)
	}
	if o.BindingLength > refLength {
		return parameterErrorf("binding-length", "%d exceeds reference length %d", o.BindingLength, refLength)
	}
	if o.ParetoShape <= 1 {
		return parameterErrorf("pareto-shape", "must be > 1 for the binding weight mean to exist, got %g", o.ParetoShape)
	}
	if o.Enrichment <= 0 {
		return parameterErrorf("enrichment", "must be positive, got %g", o.Enrichment)
	}
	if o.FragmentMin <= o.BindingLength {
		return parameterErrorf("fragment-min", "%d must exceed binding-length %d", o.FragmentMin, o.BindingLength)
	}
	if o.FragmentMin > o.FragmentMean || o.FragmentMean > o.FragmentMax {
		return parameterErrorf("fragment-mean", "need fragment-min <= fragment-mean <= fragment-max, got %d/%d/%d",
			o.FragmentMin, o.FragmentMean, o.FragmentMax)
	}
	if o.KernelSamples <= 0 {
		return parameterErrorf("kernel-samples", "must be positive, got %d", o.KernelSamples)
	}
	if o.NReads <= 0 {
		return parameterErrorf("reads", "must be positive, got %d", o.NReads)
	}
	if o.ReadLength <= 0 {
		return parameterErrorf("read-length", "must be positive, got %d", o.ReadLength)
	}
	if o.ReadLength > refLength {
		return parameterErrorf("read-length", "%d exceeds reference length %d", o.ReadLength, refLength)
	}
	if o.MaxAttempts <= 0 {
		return parameterErrorf("max-attempts", "must be positive, got %d", o.MaxAttempts)
	}
	return nil
}
