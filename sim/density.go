package sim

// RegionDensity flattens a region sequence into a per-position binding-site
// density of length refLength.
//
// A Background region spreads its weight uniformly: every covered position
// gets weight/bindingLength. The normalizer is the binding region length
// rather than the background region length, which keeps background and
// binding densities on a comparable per-site scale.
//
// A Binding region contributes a single spike of its full weight at the
// floor of its midpoint; the rest of the region stays zero. There is no
// smoothing across region boundaries; the fragment kernel takes care of
// spatial smearing later.
//
// Regions extending past refLength are truncated at the array edge (a
// midpoint falling outside the array drops that spike).
func RegionDensity(regions []Region, refLength, bindingLength int) []float64 {
	density := make([]float64, refLength)
	for _, reg := range regions {
		switch reg.Kind {
		case Background:
			perPos := reg.Weight / float64(bindingLength)
			end := reg.End()
			if end > refLength {
				end = refLength
			}
			for p := reg.Start; p < end; p++ {
				density[p] += perPos
			}
		case Binding:
			mid := reg.Start + reg.Length/2
			if mid < refLength {
				density[mid] += reg.Weight
			}
		}
	}
	return density
}
