package spectrum

import (
	"gonum.org/v1/gonum/floats"
)

// Occupancy describes the occupied band of a single frame: the bins whose
// level lies within a threshold of the frame peak.
type Occupancy struct {
	Frame         int
	Time          float64 // seconds
	PeakFrequency float64 // Hz
	PeakLevelDB   float64
	LowFrequency  float64 // Hz, lowest occupied bin
	HighFrequency float64 // Hz, highest occupied bin
	Bins          int     // number of occupied bins, 0 for a silent frame
}

// Bandwidth returns the span between the lowest and highest occupied bin.
func (o Occupancy) Bandwidth() float64 {
	if o.Bins == 0 {
		return 0
	}
	return o.HighFrequency - o.LowFrequency
}

// Occupancy returns one entry per frame. Bins with a zero level never count
// as occupied.
func (r *Result) Occupancy(thresholdDB float64) []Occupancy {
	out := make([]Occupancy, r.Cols())
	if r.Rows() == 0 {
		for t := range out {
			out[t] = Occupancy{Frame: t, Time: r.Times[t]}
		}
		return out
	}

	for t := range out {
		col := r.Column(t)
		o := Occupancy{Frame: t, Time: r.Times[t]}

		peak := r.peakRow(t, col)
		if col[peak] <= 0 {
			out[t] = o
			continue
		}

		o.PeakFrequency = r.Frequencies[peak]
		o.PeakLevelDB = r.LevelDB(col[peak])

		floor := o.PeakLevelDB - thresholdDB
		for f, v := range col {
			if v <= 0 || r.LevelDB(v) < floor {
				continue
			}
			if o.Bins == 0 {
				o.LowFrequency = r.Frequencies[f]
			}
			o.HighFrequency = r.Frequencies[f]
			o.Bins++
		}

		out[t] = o
	}

	return out
}

// peakRow returns the row of the peak of frame t. The maximum found before
// smoothing is used when it lies inside this result.
func (r *Result) peakRow(t int, col []float64) int {
	if t < len(r.PeakBins) && r.PeakBins[t] >= 0 {
		if f := r.PeakBins[t] - r.firstBin; f >= 0 && f < len(col) {
			return f
		}
	}
	return peakIndex(col)
}

// plateauTolerance is the relative difference under which neighbouring bins
// belong to the same peak.
const plateauTolerance = 1e-9

// peakIndex returns the index of the maximum of col. Smoothing turns a narrow
// line into a plateau of equal bins, so a run of maxima resolves to its
// centre, rounding up for even runs to match the moving average alignment.
func peakIndex(col []float64) int {
	peak := floats.MaxIdx(col)
	limit := col[peak] * (1 - plateauTolerance)

	lo, hi := peak, peak
	for lo > 0 && col[lo-1] >= limit {
		lo--
	}
	for hi+1 < len(col) && col[hi+1] >= limit {
		hi++
	}
	return (lo + hi + 1) / 2
}
