package app

import (
	"math"
	"testing"
)

func levels(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}

func TestLevelHistogram_TooFewSamples(t *testing.T) {
	h := NewLevelHistogram()
	for _, l := range levels(1, 2, 3) {
		h.Observe(l)
	}

	if got := h.Bounds(); got != defaultLevelBounds() {
		t.Errorf("Bounds() = %+v, want defaults", got)
	}
}

func TestLevelHistogram_Bounds(t *testing.T) {
	h := NewLevelHistogram()
	for i := range 100 {
		v := float64(i) // 0 .. 99 dB
		h.Observe(&v)
	}

	if h.Count() != 100 {
		t.Fatalf("Count() = %d, want 100", h.Count())
	}

	// 5th percentile bin 4, 95th bin 95, span 91, margin 9
	got := h.Bounds()
	if got.Min != -5 || got.Max != 104 {
		t.Errorf("Bounds() = [%v, %v], want [-5, 104]", got.Min, got.Max)
	}
	if math.Abs(got.Mean-49.5) > 1e-9 {
		t.Errorf("Mean = %v, want 49.5", got.Mean)
	}
}

func TestLevelHistogram_MinimumSpan(t *testing.T) {
	h := NewLevelHistogram()
	for range 50 {
		v := 20.5
		h.Observe(&v)
	}

	got := h.Bounds()
	if span := got.Max - got.Min; span < minimumSpan {
		t.Errorf("span = %v, want >= %d", span, minimumSpan)
	}
	if got.Min > 20 || got.Max < 20 {
		t.Errorf("Bounds() = [%v, %v], want to contain 20", got.Min, got.Max)
	}
}

func TestLevelHistogram_IgnoresMissing(t *testing.T) {
	h := NewLevelHistogram()
	h.Observe(nil)
	for _, l := range levels(math.Inf(-1), math.NaN()) {
		h.Observe(l)
	}

	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
}

func TestLevelHistogram_Halve(t *testing.T) {
	h := NewLevelHistogram()
	for _, l := range levels(1, 1, 1, 5) {
		h.Observe(l)
	}
	h.halve()

	if h.Count() != 2 {
		t.Errorf("Count() = %d, want 2", h.Count())
	}
	if _, ok := h.bins[5]; ok {
		t.Error("bin 5 survived halving")
	}
	if h.lo != 1 || h.hi != 1 {
		t.Errorf("range = [%d, %d], want [1, 1]", h.lo, h.hi)
	}
}

func TestSmoothBounds(t *testing.T) {
	s := NewSmoothBounds(0.5)
	if s.Update(nil) != defaultLevelBounds() {
		t.Fatal("Update(nil) changed the bounds")
	}

	for i := range 200 {
		v := float64(i % 100)
		s.Update(&v)
	}

	current := s.Current()
	settled := s.Settle()
	if math.Abs(current.Min-settled.Min) > 3 || math.Abs(current.Max-settled.Max) > 3 {
		t.Errorf("smoothed %+v did not converge to %+v", current, settled)
	}

	s.Clear()
	if s.Current() != defaultLevelBounds() {
		t.Errorf("Clear() left %+v", s.Current())
	}
}
