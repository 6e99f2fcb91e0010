package spectrum

import (
	"math"
	"slices"
)

// Result is a spectrogram. Values is indexed [frequency][time]:
// len(Values) == len(Frequencies) and len(Values[f]) == len(Times).
type Result struct {
	Frequencies []float64   // Hz, shifted axis, strictly increasing
	Times       []float64   // frame centres in seconds
	Values      [][]float64 // power (psd) or magnitude, depending on Mode
	PeakBins    []int       // shifted bin of each frame's maximum before smoothing, -1 when silent
	Mode        Mode
	Params      Params

	firstBin int // shifted bin of Frequencies[0]
}

// Rows returns the number of frequency bins.
func (r *Result) Rows() int {
	return len(r.Frequencies)
}

// Cols returns the number of time frames.
func (r *Result) Cols() int {
	return len(r.Times)
}

// Column returns a copy of the spectrum of frame t.
func (r *Result) Column(t int) []float64 {
	col := make([]float64, len(r.Values))
	for f, row := range r.Values {
		col[f] = row[t]
	}
	return col
}

// Bin returns the shifted FFT bin of row f.
func (r *Result) Bin(f int) int {
	return r.firstBin + f
}

// Band returns a copy of the result restricted to the band of interest
// [Params.MinBin, Params.MaxBin].
func (r *Result) Band() *Result {
	lo := max(r.Params.MinBin-r.firstBin, 0)
	hi := min(r.Params.MaxBin-r.firstBin, len(r.Frequencies)-1)
	if hi < lo {
		return &Result{Times: clone(r.Times), PeakBins: slices.Clone(r.PeakBins), Mode: r.Mode, Params: r.Params, firstBin: r.Params.MinBin}
	}

	values := make([][]float64, hi-lo+1)
	for f := range values {
		values[f] = clone(r.Values[lo+f])
	}

	return &Result{
		Frequencies: clone(r.Frequencies[lo : hi+1]),
		Times:       clone(r.Times),
		Values:      values,
		PeakBins:    slices.Clone(r.PeakBins),
		Mode:        r.Mode,
		Params:      r.Params,
		firstBin:    r.firstBin + lo,
	}
}

// LevelDB converts a value of this result to decibels. Zero maps to -Inf.
func (r *Result) LevelDB(v float64) float64 {
	if r.Mode == ModeMagnitude {
		return 20 * math.Log10(v)
	}
	return 10 * math.Log10(v)
}

// Duration returns the time spanned by the analysed signal, in seconds.
func (r *Result) Duration() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	half := float64(r.Params.Config.SegmentLength) / 2 / r.Params.Config.SamplingFrequency
	return r.Times[len(r.Times)-1] + half
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
