package sim

import (
	"math"
	"reflect"
	"testing"

	"golang.org/x/exp/rand"
)

func TestFragmentKernelUnitMass(t *testing.T) {
	opts := testOpts()
	rnd := rand.New(rand.NewSource(7))
	dist := NormalFragmentDist(opts.FragmentMin, opts.FragmentMean, opts.FragmentMax)
	kernel, err := NewFragmentKernel(rnd, dist, opts)
	if err != nil {
		t.Fatal(err)
	}
	total := 0.0
	for _, v := range kernel.Probs {
		if v < 0 {
			t.Fatalf("negative kernel value %g", v)
		}
		total += v
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("kernel mass = %g, want 1", total)
	}
	if kernel.Pad != opts.BindingLength/2 {
		t.Errorf("kernel pad = %d, want %d", kernel.Pad, opts.BindingLength/2)
	}
	if max := opts.FragmentMax - opts.BindingLength + 1; len(kernel.Probs) > max {
		t.Errorf("kernel support %d exceeds achievable offset range %d", len(kernel.Probs), max)
	}
	if kernel.Len() != kernel.Pad+len(kernel.Probs) {
		t.Errorf("kernel Len = %d, want %d", kernel.Len(), kernel.Pad+len(kernel.Probs))
	}
}

func TestFragmentKernelDeterminism(t *testing.T) {
	opts := testOpts()
	gen := func() *FragmentKernel {
		rnd := rand.New(rand.NewSource(11))
		dist := NormalFragmentDist(opts.FragmentMin, opts.FragmentMean, opts.FragmentMax)
		kernel, err := NewFragmentKernel(rnd, dist, opts)
		if err != nil {
			t.Fatal(err)
		}
		return kernel
	}
	if !reflect.DeepEqual(gen(), gen()) {
		t.Error("same seed produced different kernels")
	}
}

func TestFragmentKernelBadDist(t *testing.T) {
	opts := testOpts()
	rnd := rand.New(rand.NewSource(1))
	_, err := NewFragmentKernel(rnd, func(int) float64 { return 0 }, opts)
	if perr, ok := err.(*ParameterError); !ok {
		t.Fatalf("got %v, want *ParameterError", err)
	} else if perr.Param != "fragment-dist" {
		t.Errorf("param = %q, want fragment-dist", perr.Param)
	}
	_, err = NewFragmentKernel(rnd, func(int) float64 { return -1 }, opts)
	if _, ok := err.(*ParameterError); !ok {
		t.Fatalf("got %v, want *ParameterError for negative probabilities", err)
	}
}

func TestNormalFragmentDist(t *testing.T) {
	dist := NormalFragmentDist(150, 200, 250)
	if dist(149) != 0 || dist(251) != 0 {
		t.Error("distribution leaks outside [min, max]")
	}
	if dist(200) <= dist(160) {
		t.Error("distribution is not peaked at the mean")
	}
	if math.Abs(dist(180)-dist(220)) > 1e-12 {
		t.Error("distribution is not symmetric about the mean")
	}
}
