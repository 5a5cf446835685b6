package sim

import (
	"math"
	"testing"
)

func TestRegionDensityBindingSpike(t *testing.T) {
	// Mitochondrial-length reference with one known binding site: the
	// whole weight lands on the floor of the site midpoint.
	const (
		refLength = 16569
		offset    = 8000
	)
	regions := []Region{
		{Kind: Binding, Start: offset, Length: 50, Weight: 100},
	}
	density := RegionDensity(regions, refLength, 50)
	if len(density) != refLength {
		t.Fatalf("density length = %d, want %d", len(density), refLength)
	}
	for p := offset; p < offset+50; p++ {
		want := 0.0
		if p == offset+25 {
			want = 100
		}
		if density[p] != want {
			t.Errorf("density[%d] = %g, want %g", p, density[p], want)
		}
	}
}

func TestRegionDensityBackgroundUniform(t *testing.T) {
	// A background-only reference: weight 40 spread with the binding
	// length (50) as the normalizer gives 0.8 everywhere.
	regions := []Region{
		{Kind: Background, Start: 0, Length: 1000, Weight: 40},
	}
	density := RegionDensity(regions, 1000, 50)
	for p, v := range density {
		if math.Abs(v-0.8) > 1e-12 {
			t.Fatalf("density[%d] = %g, want 0.8", p, v)
		}
	}
}

func TestRegionDensityTruncation(t *testing.T) {
	regions := []Region{
		{Kind: Background, Start: 0, Length: 500, Weight: 10},
		// Extends past the reference end; only the in-bounds part counts.
		{Kind: Background, Start: 500, Length: 500, Weight: 20},
		// Midpoint out of bounds; the spike is dropped.
		{Kind: Binding, Start: 780, Length: 50, Weight: 99},
	}
	density := RegionDensity(regions, 800, 50)
	if len(density) != 800 {
		t.Fatalf("density length = %d, want 800", len(density))
	}
	if math.Abs(density[499]-0.2) > 1e-12 {
		t.Errorf("density[499] = %g, want 0.2", density[499])
	}
	if math.Abs(density[780]-0.4) > 1e-12 {
		t.Errorf("density[780] = %g, want 0.4 (spike midpoint 805 is out of bounds)", density[780])
	}
}

func TestRegionDensityMass(t *testing.T) {
	regions := []Region{
		{Kind: Background, Start: 0, Length: 500, Weight: 12},
		{Kind: Binding, Start: 500, Length: 50, Weight: 77},
		{Kind: Background, Start: 550, Length: 450, Weight: 8},
	}
	density := RegionDensity(regions, 1000, 50)
	total := 0.0
	for _, v := range density {
		total += v
	}
	want := 12*500/50.0 + 77 + 8*450/50.0
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("total mass = %g, want %g", total, want)
	}
}
