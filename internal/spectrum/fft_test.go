package spectrum

import (
	"math/cmplx"
	"testing"

	"github.com/roman-kulish/doppler-if/internal/testutil"
)

func TestTransformer_Impulse(t *testing.T) {
	for _, b := range []Backend{BackendGonum, BackendGoDSP} {
		t.Run(b.String(), func(t *testing.T) {
			src := make([]complex128, 16)
			src[0] = 1

			got := NewTransformer(b, len(src)).Transform(make([]complex128, len(src)), src)
			if len(got) != len(src) {
				t.Fatalf("len = %d, want %d", len(got), len(src))
			}
			for k, v := range got {
				if cmplx.Abs(v-1) > 1e-12 {
					t.Fatalf("X[%d] = %v, want 1", k, v)
				}
			}
		})
	}
}

func TestTransformer_Tone(t *testing.T) {
	// A tone at 3 cycles per frame lands entirely in bin 3.
	src := testutil.ComplexTone(3, 32, 1, 32)

	for _, b := range []Backend{BackendGonum, BackendGoDSP} {
		t.Run(b.String(), func(t *testing.T) {
			got := NewTransformer(b, len(src)).Transform(make([]complex128, len(src)), src)
			for k, v := range got {
				want := 0.0
				if k == 3 {
					want = 32
				}
				if d := cmplx.Abs(v) - want; d > 1e-9 || d < -1e-9 {
					t.Fatalf("|X[%d]| = %v, want %v", k, cmplx.Abs(v), want)
				}
			}
		})
	}
}

func TestTransformer_BackendsAgree(t *testing.T) {
	src := testutil.DeterministicNoise(7, 100, 256)

	a := NewTransformer(BackendGonum, len(src)).Transform(make([]complex128, len(src)), src)
	b := NewTransformer(BackendGoDSP, len(src)).Transform(make([]complex128, len(src)), src)

	for _, part := range []struct {
		name string
		fn   func(complex128) float64
	}{
		{"real", func(v complex128) float64 { return real(v) }},
		{"imag", func(v complex128) float64 { return imag(v) }},
	} {
		ga, gb := make([]float64, len(a)), make([]float64, len(b))
		for k := range a {
			ga[k], gb[k] = part.fn(a[k]), part.fn(b[k])
		}
		if d := testutil.MaxAbsDiff(ga, gb); d > 1e-8 {
			t.Errorf("%s parts differ by %g", part.name, d)
		}
	}
}
