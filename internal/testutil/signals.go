// Package testutil provides deterministic signals and tolerance checks shared
// by the package tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// ComplexTone generates a complex exponential at freqHz. Positive frequencies
// rotate counter-clockwise, as an approaching target does in Q + jI.
func ComplexTone(freqHz, sampleRate, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = cmplx.Rect(amplitude, step*float64(i))
	}
	return out
}

// ToneStreams generates integer I and Q streams of a tone, as they would be
// read from a dump. The ADC mid-scale offset is added to both.
func ToneStreams(freqHz, sampleRate, amplitude float64, offset, length int) (i, q []int) {
	i = make([]int, length)
	q = make([]int, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for k := range length {
		i[k] = offset + int(math.Round(amplitude*math.Sin(step*float64(k))))
		q[k] = offset + int(math.Round(amplitude*math.Cos(step*float64(k))))
	}
	return i, q
}

// DeterministicNoise generates complex white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = complex((rng.Float64()*2-1)*amplitude, (rng.Float64()*2-1)*amplitude)
	}
	return out
}
