package sim

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ReadDensity holds the per-position DNA-fragment densities of the two
// strands. Both slices have the reference length. Values are unnormalized
// relative densities; only the sampler treats them as probabilities.
type ReadDensity struct {
	Forward []float64
	Reverse []float64
}

// ConvolveReadDensity convolves the binding-site density with the fragment
// kernel and slices out the [0, refLength) window for each strand.
//
// The padded kernel's support is a rightward displacement d >= Pad. A
// forward-strand read starts d bases left of the density mass and extends
// right across it, so the forward density is the convolution with the
// reversed kernel, read at offset kernelLen-1. A reverse-strand read
// anchors d bases right of the mass and extends left, so the reverse
// density is the plain convolution read at offset 0.
//
// The linear convolution is computed via real FFTs over the next power of
// two that holds the full result; the padding length only affects speed,
// never the sliced values. Negative values and NaNs from floating-point
// roundoff are clamped to zero.
func ConvolveReadDensity(density []float64, kernel *FragmentKernel) *ReadDensity {
	refLength := len(density)
	kern := kernel.padded()
	size := nextPow2(refLength + len(kern) - 1)

	fft := fourier.NewFFT(size)
	padded := make([]float64, size)
	copy(padded, density)
	densCoeff := fft.Coefficients(nil, padded)

	forward := strandDensity(fft, densCoeff, reversed(kern), refLength, len(kern)-1)
	reverse := strandDensity(fft, densCoeff, kern, refLength, 0)
	return &ReadDensity{Forward: forward, Reverse: reverse}
}

// strandDensity multiplies the density spectrum with the kernel's, inverts,
// and slices refLength values starting at the given offset of the full
// linear convolution.
func strandDensity(fft *fourier.FFT, densCoeff []complex128, kern []float64, refLength, offset int) []float64 {
	size := fft.Len()
	padded := make([]float64, size)
	copy(padded, kern)
	kernCoeff := fft.Coefficients(nil, padded)
	for i, c := range densCoeff {
		kernCoeff[i] *= c
	}
	full := fft.Sequence(nil, kernCoeff)

	out := make([]float64, refLength)
	scale := 1 / float64(size)
	for p := 0; p < refLength; p++ {
		v := full[p+offset] * scale
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		out[p] = v
	}
	return out
}

func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
