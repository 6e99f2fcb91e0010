package app

import "math"

const (
	defaultMinLevel = -40.0 // dB
	defaultMaxLevel = 60.0  // dB

	// For 20 samples the 5th percentile is the 1st sample and the
	// 95th percentile the 19th.
	minimumSampleCount = 20

	// minimumSpan is the narrowest level range mapped onto the colour scale
	minimumSpan = 30
)

// LevelBounds are the level boundaries mapped onto the colour scale
type LevelBounds struct {
	Min  float64 // dB, 5th percentile minus margin
	Max  float64 // dB, 95th percentile plus margin
	Mean float64 // dB
}

func defaultLevelBounds() LevelBounds {
	return LevelBounds{
		Min:  defaultMinLevel,
		Max:  defaultMaxLevel,
		Mean: (defaultMinLevel + defaultMaxLevel) / 2,
	}
}

// LevelHistogram counts levels in 1 dB bins
type LevelHistogram struct {
	bins  map[int]uint32
	total uint64
	lo    int // lowest populated bin
	hi    int // highest populated bin
}

// NewLevelHistogram creates an empty histogram
func NewLevelHistogram() *LevelHistogram {
	h := LevelHistogram{}
	h.Clear()
	return &h
}

func binOf(level float64) int {
	return int(math.Floor(level))
}

// halve divides every count by two, dropping bins that become empty
func (h *LevelHistogram) halve() {
	h.lo, h.hi = math.MaxInt32, math.MinInt32
	for bin, count := range h.bins {
		if count /= 2; count == 0 {
			delete(h.bins, bin)
			continue
		}
		h.bins[bin] = count
		h.lo, h.hi = min(h.lo, bin), max(h.hi, bin)
	}
	h.total /= 2
}

// Observe adds a level to the histogram. nil and non-finite levels are ignored.
func (h *LevelHistogram) Observe(level *float64) {
	if level == nil || math.IsInf(*level, 0) || math.IsNaN(*level) {
		return
	}

	bin := binOf(*level)
	if h.bins[bin] == math.MaxUint32 || h.total == math.MaxUint64 {
		h.halve()
	}

	h.bins[bin]++
	h.total++
	h.lo, h.hi = min(h.lo, bin), max(h.hi, bin)
}

// Count returns the number of observed levels
func (h *LevelHistogram) Count() uint64 {
	return h.total
}

// Clear resets the histogram
func (h *LevelHistogram) Clear() {
	h.bins = make(map[int]uint32)
	h.total = 0
	h.lo, h.hi = math.MaxInt32, math.MinInt32
}

// Bounds returns the 5th to 95th percentile range, widened to at least
// minimumSpan dB plus a 10% margin. Too few samples yield the defaults.
func (h *LevelHistogram) Bounds() LevelBounds {
	if h.total < minimumSampleCount {
		return defaultLevelBounds()
	}

	target := h.total * 5 / 100

	var count uint64
	var lower, upper int
	for bin := h.lo; bin <= h.hi; bin++ {
		if count += uint64(h.bins[bin]); count >= target {
			lower = bin
			break
		}
	}
	count = 0
	for bin := h.hi; bin >= h.lo; bin-- {
		if count += uint64(h.bins[bin]); count >= target {
			upper = bin
			break
		}
	}

	var weighted float64
	for bin, n := range h.bins {
		weighted += float64(bin) * float64(n)
	}

	if upper-lower < minimumSpan {
		centre := (upper + lower) / 2
		lower, upper = centre-minimumSpan/2, centre+minimumSpan/2
	}
	margin := (upper - lower) / 10

	return LevelBounds{
		Min:  float64(lower - margin),
		Max:  float64(upper + margin),
		Mean: weighted / float64(h.total),
	}
}

// SmoothBounds tracks exponentially smoothed histogram bounds
type SmoothBounds struct {
	hist    *LevelHistogram
	alpha   float64 // smoothing factor in (0, 1]
	current LevelBounds
}

// NewSmoothBounds creates a bounds tracker with the given smoothing factor
func NewSmoothBounds(alpha float64) *SmoothBounds {
	return &SmoothBounds{
		hist:    NewLevelHistogram(),
		alpha:   alpha,
		current: defaultLevelBounds(),
	}
}

// Update observes a level and returns the smoothed bounds
func (s *SmoothBounds) Update(level *float64) LevelBounds {
	if level == nil {
		return s.current
	}

	s.hist.Observe(level)
	next := s.hist.Bounds()

	s.current.Min += (next.Min - s.current.Min) * s.alpha
	s.current.Max += (next.Max - s.current.Max) * s.alpha
	s.current.Mean = next.Mean

	return s.current
}

// Current returns the smoothed bounds
func (s *SmoothBounds) Current() LevelBounds {
	return s.current
}

// Settle replaces the smoothed bounds with the histogram bounds over
// everything observed so far.
func (s *SmoothBounds) Settle() LevelBounds {
	s.current = s.hist.Bounds()
	return s.current
}

// Clear resets the histogram and bounds
func (s *SmoothBounds) Clear() {
	s.hist.Clear()
	s.current = defaultLevelBounds()
}
