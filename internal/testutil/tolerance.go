package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// MaxAbsDiff returns the largest element-wise distance between a and b, which
// must have the same length.
func MaxAbsDiff(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// RequireSliceNearlyEqual fails t when got and want differ in length or when
// any element is further than eps from its counterpart.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	if d := MaxAbsDiff(got, want); d > eps {
		for i := range got {
			if math.Abs(got[i]-want[i]) > eps {
				t.Fatalf("[%d] = %v, want %v (max diff %g > %g)", i, got[i], want[i], d, eps)
			}
		}
	}
}

// RequireMatrixNearlyEqual applies RequireSliceNearlyEqual row by row.
func RequireMatrixNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	var worst float64
	for r := range want {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("row %d: len = %d, want %d", r, len(got[r]), len(want[r]))
		}
		worst = math.Max(worst, MaxAbsDiff(got[r], want[r]))
	}
	if worst > eps {
		t.Fatalf("max diff %g > %g", worst, eps)
	}
}

// RequireFinite fails t on the first NaN or infinite value.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want a finite value", i, v)
		}
	}
}
