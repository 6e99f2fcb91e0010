package spectrum

// MovingAverage smooths a column with a centred moving average of width bins.
// Near the edges only the existing bins are averaged, so no shift is
// introduced. Widths of 0 and 1 return an unchanged copy.
func MovingAverage(col []float64, width int) []float64 {
	out := make([]float64, len(col))
	movingAverage(out, col, width, nil)
	return out
}

// movingAverage writes the smoothed src into dst. prefix is scratch space of
// len(src)+1 and may be nil.
func movingAverage(dst, src []float64, width int, prefix []float64) []float64 {
	n := len(src)
	if width <= 1 || n == 0 {
		copy(dst, src)
		return prefix
	}

	if cap(prefix) < n+1 {
		prefix = make([]float64, n+1)
	}
	prefix = prefix[:n+1]
	prefix[0] = 0
	for i, v := range src {
		prefix[i+1] = prefix[i] + v
	}

	left := (width - 1) / 2
	right := width / 2
	for i := range dst {
		lo := max(0, i-left)
		hi := min(n-1, i+right)
		dst[i] = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}

	return prefix
}
