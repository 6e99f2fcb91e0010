package spectrum

import (
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/roman-kulish/doppler-if/internal/iq"
)

// WithLogger sets the logger used by the engine
func WithLogger(logger *slog.Logger) func(*Engine) {
	return func(e *Engine) {
		e.logger = logger.With(slog.String("component", "spectrum"))
	}
}

// Engine computes spectrograms of complex baseband signals. An Engine is
// immutable once created and safe for concurrent use.
type Engine struct {
	params Params
	window []float64
	scale  float64
	logger *slog.Logger
}

// NewEngine validates the configuration and precomputes the window.
func NewEngine(cfg Config, options ...func(*Engine)) (*Engine, error) {
	params, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}

	coeffs, err := Coefficients(params.Config.Window, params.Config.SegmentLength)
	if err != nil {
		return nil, NewConfigError("window", "%v", err)
	}

	e := Engine{
		params: params,
		window: coeffs,
		scale:  scaleFactor(params.Config.Scaling, coeffs, params.Config.SamplingFrequency),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&e)
	}

	return &e, nil
}

// Params returns the derived analysis parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Compute runs the short-time Fourier transform over the signal.
func (e *Engine) Compute(sig iq.Signal) (*Result, error) {
	cfg := e.params.Config
	n := sig.Len()
	if n < cfg.SegmentLength {
		return nil, &InsufficientDataError{Samples: n, Required: cfg.SegmentLength}
	}

	frames := e.params.Frames(n)
	step := e.params.Step()

	times := make([]float64, frames)
	for k := range times {
		times[k] = (float64(cfg.SegmentLength)/2 + float64(k*step)) / cfg.SamplingFrequency
	}

	values := make([][]float64, e.params.FFTBins)
	for f := range values {
		values[f] = make([]float64, frames)
	}
	peaks := make([]int, frames)

	workers := max(1, min(cfg.Workers, frames))

	e.logger.Debug("computing spectrogram",
		slog.Int("samples", n),
		slog.Int("frames", frames),
		slog.Int("fftBins", e.params.FFTBins),
		slog.Float64("resolution", e.params.Resolution),
		slog.Int("workers", workers))

	if workers == 1 {
		e.newWorker().run(sig, values, peaks, 0, frames, 1)
	} else {
		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.newWorker().run(sig, values, peaks, w, frames, workers)
			}()
		}
		wg.Wait()
	}

	return &Result{
		Frequencies: e.params.FrequencyAxis(),
		Times:       times,
		Values:      values,
		PeakBins:    peaks,
		Mode:        cfg.Mode,
		Params:      e.params,
	}, nil
}

// worker holds the per-goroutine scratch buffers and FFT plan.
type worker struct {
	e *Engine
	t Transformer

	segment []complex128
	padded  []complex128
	spec    []complex128
	level   []float64
	smooth  []float64
	prefix  []float64
}

func (e *Engine) newWorker() *worker {
	n := e.params.FFTBins
	return &worker{
		e:       e,
		t:       NewTransformer(e.params.Config.FFTBackend, n),
		segment: make([]complex128, 0, e.params.Config.SegmentLength),
		padded:  make([]complex128, n),
		spec:    make([]complex128, n),
		level:   make([]float64, n),
		smooth:  make([]float64, n),
	}
}

// run transforms frames first, first+stride, ... and writes their columns.
// Workers never share a column.
func (w *worker) run(sig iq.Signal, values [][]float64, peaks []int, first, frames, stride int) {
	for t := first; t < frames; t += stride {
		col, peak := w.frame(sig, t)
		for f, v := range col {
			values[f][t] = v
		}
		peaks[t] = peak
	}
}

// frame returns the processed column of frame t and the bin of its maximum
// before smoothing, or -1 when every bin is zero.
func (w *worker) frame(sig iq.Signal, t int) ([]float64, int) {
	p := w.e.params
	cfg := p.Config
	n := p.FFTBins

	from := t * p.Step()
	w.segment = sig.Slice(w.segment, from, from+cfg.SegmentLength)

	var mean complex128
	if cfg.Detrend == DetrendConstant {
		for _, s := range w.segment {
			mean += s
		}
		mean /= complex(float64(len(w.segment)), 0)
	}

	for i, s := range w.segment {
		w.padded[i] = (s - mean) * complex(w.e.window[i], 0)
	}
	clear(w.padded[len(w.segment):])

	w.spec = w.t.Transform(w.spec, w.padded)

	half := n / 2
	for i := range w.level {
		x := w.spec[(i+half)%n]
		if cfg.Mode == ModeMagnitude {
			w.level[i] = cmplx.Abs(x) * math.Sqrt(w.e.scale)
		} else {
			re, im := real(x), imag(x)
			w.level[i] = (re*re + im*im) * w.e.scale
		}
	}

	if cfg.ZeroForcing {
		p.zeroForce(w.level)
	}

	peak := floats.MaxIdx(w.level)
	if !(w.level[peak] > 0) {
		peak = -1
	}

	if p.SmoothingBins <= 1 {
		return w.level, peak
	}

	w.prefix = movingAverage(w.smooth, w.level, p.SmoothingBins, w.prefix)
	if cfg.ZeroForcing {
		p.zeroForce(w.smooth)
	}
	return w.smooth, peak
}
