package app

import (
	"math"

	"github.com/roman-kulish/doppler-if/internal/spectrum"
)

// SpectrumData is a band-limited spectrogram in display order: one span per
// frame, one dB level per frequency bin. Zero bins have no level.
type SpectrumData struct {
	Width, Height              int // bins, frames
	FrequencyMin, FrequencyMax float64
	TimeStart, TimeEnd         float64 // seconds, first and last frame centre
	Duration                   float64 // seconds
	SamplingFrequency          float64
	Resolution                 float64
	BoundsTracker              *SmoothBounds
	Spans                      [][]*float64
}

// NewSpectrumData converts the band of interest of a result into dB levels.
func NewSpectrumData(res *spectrum.Result, b *SmoothBounds) *SpectrumData {
	band := res.Band()

	s := SpectrumData{
		Width:             band.Rows(),
		Height:            band.Cols(),
		Duration:          band.Duration(),
		SamplingFrequency: band.Params.Config.SamplingFrequency,
		Resolution:        band.Params.Resolution,
		BoundsTracker:     b,
		Spans:             make([][]*float64, band.Cols()),
	}
	if s.Width > 0 {
		s.FrequencyMin = band.Frequencies[0]
		s.FrequencyMax = band.Frequencies[s.Width-1]
	}
	if s.Height > 0 {
		s.TimeStart = band.Times[0]
		s.TimeEnd = band.Times[s.Height-1]
	}

	for t := range s.Spans {
		levels := make([]*float64, s.Width)
		for f, v := range band.Column(t) {
			if v <= 0 {
				continue
			}
			level := band.LevelDB(v)
			if math.IsInf(level, 0) || math.IsNaN(level) {
				continue
			}
			levels[f] = &level
			b.Update(&level)
		}
		s.Spans[t] = levels
	}

	return &s
}
