package sim

// Stats summarizes one simulation run.
type Stats struct {
	// Attempts is the number of region-chain realizations tried,
	// including the successful one.
	Attempts int
	// Regions is the total region count of the accepted realization.
	Regions int
	// BindingRegions and BackgroundRegions break Regions down by kind.
	BindingRegions    int
	BackgroundRegions int
	// ForwardReads and ReverseReads are the emitted position counts.
	ForwardReads int
	ReverseReads int
}

// Merge adds the field values of the two Stats objects and creates new
// Stats. Useful when aggregating over sequences or replicates.
func (s Stats) Merge(o Stats) Stats {
	s.Attempts += o.Attempts
	s.Regions += o.Regions
	s.BindingRegions += o.BindingRegions
	s.BackgroundRegions += o.BackgroundRegions
	s.ForwardReads += o.ForwardReads
	s.ReverseReads += o.ReverseReads
	return s
}
