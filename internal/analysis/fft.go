// Package analysis extracts frequency content from recorded trajectories,
// mainly to estimate orbital periods.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with a radix-2
// Cooley-Tukey recursion. The input length must be a power of two;
// use PadPow2 first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PadPow2 zero-pads data up to the next power-of-two length.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of each frequency bin up to the
// Nyquist limit.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(PadPow2(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantPeriod estimates the strongest periodic component of a sampled
// signal, in the signal's own time units. dt is the sample spacing. Returns
// 0 when no oscillation stands out (fewer than two samples, or the peak sits
// in the DC bin).
func DominantPeriod(data []float64, dt float64) float64 {
	if len(data) < 2 || dt <= 0 {
		return 0
	}

	// remove the mean so the DC bin does not swamp the orbit frequency
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	n := len(ps) * 2

	peakIdx := 0
	peak := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			peak = ps[i]
			peakIdx = i
		}
	}
	if peakIdx == 0 {
		return 0
	}

	freq := float64(peakIdx) / (float64(n) * dt)
	return 1.0 / freq
}
