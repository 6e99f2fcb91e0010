package spectrum

import (
	"math"
	"math/bits"
)

// Params are the values derived from a Config. Bin indices refer to the
// zero-centred (shifted) frequency axis.
type Params struct {
	Config Config // validated, with defaults applied

	FFTBins       int     // transform length, a power of two
	Resolution    float64 // Hz per bin, SamplingFrequency / FFTBins
	SmoothingBins int     // moving average width in bins

	MinBin       int
	MaxBin       int
	FrequencyMin float64 // Hz, Config.FrequencyMin snapped to MinBin
	FrequencyMax float64 // Hz, Config.FrequencyMax snapped to MaxBin
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Resolve validates the configuration and derives the analysis parameters.
func Resolve(cfg Config) (Params, error) {
	if err := cfg.Validate(); err != nil {
		return Params{}, err
	}
	cfg = cfg.withDefaults()

	fs := cfg.SamplingFrequency

	var fftBins int
	if cfg.FFTLength != 0 {
		fftBins = cfg.FFTLength
	} else {
		target := math.Ceil(fs / 2 / cfg.FFTResolution)
		if target > maxFFTBins {
			return Params{}, NewConfigError("fftResolution", "too fine for %g Hz sampling: %g", fs, cfg.FFTResolution)
		}
		fftBins = NextPowerOfTwo(int(target))
	}
	if fftBins < cfg.SegmentLength {
		return Params{}, NewConfigError("segmentLength", "must not exceed the FFT length %d: %d", fftBins, cfg.SegmentLength)
	}

	p := Params{
		Config:     cfg,
		FFTBins:    fftBins,
		Resolution: fs / float64(fftBins),
	}

	p.SmoothingBins = int(math.RoundToEven(cfg.SmoothingWindow / p.Resolution))

	half := fftBins / 2
	p.MinBin = clampBin(half+int(math.RoundToEven(cfg.FrequencyMin/p.Resolution)), fftBins)
	p.MaxBin = clampBin(half+int(math.RoundToEven(cfg.FrequencyMax/p.Resolution)), fftBins)
	p.FrequencyMin = p.Frequency(p.MinBin)
	p.FrequencyMax = p.Frequency(p.MaxBin)

	return p, nil
}

func clampBin(bin, fftBins int) int {
	return max(0, min(bin, fftBins-1))
}

// Step returns the hop between consecutive frames, in samples.
func (p Params) Step() int {
	return p.Config.SegmentLength - p.Config.Overlap
}

// Frames returns the number of STFT frames that fit in n samples.
func (p Params) Frames(n int) int {
	if n < p.Config.SegmentLength {
		return 0
	}
	return (n-p.Config.SegmentLength)/p.Step() + 1
}

// Frequency returns the frequency of a bin on the shifted axis.
func (p Params) Frequency(bin int) float64 {
	return -p.Config.SamplingFrequency/2 + float64(bin)*p.Resolution
}

// FrequencyAxis returns the shifted frequency axis, spanning [-fs/2, fs/2).
func (p Params) FrequencyAxis() []float64 {
	axis := make([]float64, p.FFTBins)
	for i := range axis {
		axis[i] = p.Frequency(i)
	}
	return axis
}

// InBand reports whether a shifted bin lies within [MinBin, MaxBin].
func (p Params) InBand(bin int) bool {
	return bin >= p.MinBin && bin <= p.MaxBin
}

// ZeroForce returns a copy of a shifted column with every bin outside the
// band of interest set to zero. Applying it twice changes nothing.
func (p Params) ZeroForce(col []float64) []float64 {
	out := make([]float64, len(col))
	copy(out, col)
	p.zeroForce(out)
	return out
}

func (p Params) zeroForce(col []float64) {
	for i := range col {
		if !p.InBand(i) {
			col[i] = 0
		}
	}
}
