package spectrum

import (
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes the unnormalized forward DFT of a complex sequence.
//
// The input is genuinely complex (mixer output), so the transform is always
// two-sided; real-input FFT routines do not apply.
type Transformer interface {
	// Transform writes the spectrum of src into dst, which must have len(src).
	Transform(dst, src []complex128) []complex128
}

// gonumTransformer reuses a precomputed plan. A plan is not safe for
// concurrent use, so each worker owns one.
type gonumTransformer struct {
	plan *fourier.CmplxFFT
}

func (t gonumTransformer) Transform(dst, src []complex128) []complex128 {
	return t.plan.Coefficients(dst, src)
}

type goDSPTransformer struct{}

func (goDSPTransformer) Transform(dst, src []complex128) []complex128 {
	return append(dst[:0], fft.FFT(src)...)
}

// NewTransformer creates a transformer of length n for the given backend.
func NewTransformer(b Backend, n int) Transformer {
	switch b {
	case BackendGoDSP:
		return goDSPTransformer{}
	default:
		return gonumTransformer{plan: fourier.NewCmplxFFT(n)}
	}
}
