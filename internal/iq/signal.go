package iq

// Stream is an ordered sequence of raw ADC samples read from one section
// ("I raw samples" or "Q raw samples") of a radar dump.
type Stream []int

// Signal is an immutable sequence of complex baseband samples in acquisition order.
type Signal struct {
	samples []complex128
}

// NewSignal creates a Signal from already reconstructed complex samples.
// The input is copied, so the caller may reuse it.
func NewSignal(samples []complex128) Signal {
	s := make([]complex128, len(samples))
	copy(s, samples)
	return Signal{samples: s}
}

// Assemble combines the two raw streams into a complex signal.
//
// Both streams are truncated to the shorter one. The front-end labels its
// channels the other way round, so the Q section is the real part and the
// I section is the imaginary part: signal[k] = Q[k] + j*I[k].
func Assemble(i, q Stream) Signal {
	n := min(len(i), len(q))

	samples := make([]complex128, n)
	for k := 0; k < n; k++ {
		samples[k] = complex(float64(q[k]), float64(i[k]))
	}

	return Signal{samples: samples}
}

// Len returns the number of complex samples.
func (s Signal) Len() int {
	return len(s.samples)
}

// At returns the k-th sample.
func (s Signal) At(k int) complex128 {
	return s.samples[k]
}

// Samples returns a copy of the complex samples.
func (s Signal) Samples() []complex128 {
	out := make([]complex128, len(s.samples))
	copy(out, s.samples)
	return out
}

// Slice copies samples [from, to) into dst and returns it. dst is grown when
// it is too short.
func (s Signal) Slice(dst []complex128, from, to int) []complex128 {
	n := to - from
	if cap(dst) < n {
		dst = make([]complex128, n)
	}
	dst = dst[:n]
	copy(dst, s.samples[from:to])
	return dst
}

// Real returns the in-phase projection (the "IFI" trace).
func (s Signal) Real() []float64 {
	out := make([]float64, len(s.samples))
	for k, v := range s.samples {
		out[k] = real(v)
	}
	return out
}

// Imag returns the quadrature projection (the "IFQ" trace).
func (s Signal) Imag() []float64 {
	out := make([]float64, len(s.samples))
	for k, v := range s.samples {
		out[k] = imag(v)
	}
	return out
}
