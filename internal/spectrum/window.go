package spectrum

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

var windowFuncs = map[WindowFunction]func([]float64) []float64{
	WindowFunctionRectangular:    window.Rectangular,
	WindowFunctionHann:           window.Hann,
	WindowFunctionHamming:        window.Hamming,
	WindowFunctionBlackman:       window.Blackman,
	WindowFunctionBlackmanHarris: window.BlackmanHarris,
	WindowFunctionFlatTop:        window.FlatTop,
}

// Coefficients returns the window coefficients of the given length.
func Coefficients(w WindowFunction, size int) ([]float64, error) {
	fn, ok := windowFuncs[w]
	if !ok {
		return nil, fmt.Errorf("unknown window function: %s", w)
	}
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 1
	}
	if size == 1 {
		// symmetric windows are undefined for a single sample
		return coeffs, nil
	}
	return fn(coeffs), nil
}

// scaleFactor returns the factor applied to |X|^2.
func scaleFactor(s Scaling, coeffs []float64, fs float64) float64 {
	switch s {
	case ScalingDensity:
		return 1 / (fs * floats.Dot(coeffs, coeffs))
	default:
		sum := floats.Sum(coeffs)
		return 1 / (sum * sum)
	}
}
