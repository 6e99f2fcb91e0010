package spectrum

import (
	"errors"
	"math"
)

const (
	// Defaults of the Sense2GoL acquisition scripts
	DefaultSamplingFrequency  = 3_000.0 // Hz
	DefaultFFTResolution      = 1.0     // Hz
	DefaultSmoothingWindow    = 10.0    // Hz
	DefaultBandwidthThreshold = 6.0     // dB
	DefaultFrequencyMin       = -1_000.0
	DefaultFrequencyMax       = 1_000.0
	DefaultSegmentLength      = 128
	DefaultOverlap            = 16

	// maxFFTBins bounds the transform length derived from the resolution target.
	maxFFTBins = 1 << 24

	// WindowFunctionHann is the default window function
	WindowFunctionHann           WindowFunction = "hann"
	WindowFunctionRectangular    WindowFunction = "rectangular"
	WindowFunctionHamming        WindowFunction = "hamming"
	WindowFunctionBlackman       WindowFunction = "blackman"
	WindowFunctionBlackmanHarris WindowFunction = "blackman-harris"
	WindowFunctionFlatTop        WindowFunction = "flat-top"

	// DetrendConstant is the default detrend method
	DetrendConstant Detrend = "constant"
	DetrendNone     Detrend = "none"

	// ScalingSpectrum is the default scaling
	ScalingSpectrum Scaling = "spectrum"
	ScalingDensity  Scaling = "density"

	// ModePSD is the default mode
	ModePSD       Mode = "psd"
	ModeMagnitude Mode = "magnitude"

	// BackendGonum is the default FFT backend
	BackendGonum Backend = "gonum"
	BackendGoDSP Backend = "go-dsp"
)

var (
	validWindowFunctions = map[WindowFunction]struct{}{
		WindowFunctionHann:           {},
		WindowFunctionRectangular:    {},
		WindowFunctionHamming:        {},
		WindowFunctionBlackman:       {},
		WindowFunctionBlackmanHarris: {},
		WindowFunctionFlatTop:        {},
	}

	validDetrends = map[Detrend]struct{}{
		DetrendConstant: {},
		DetrendNone:     {},
	}

	validScalings = map[Scaling]struct{}{
		ScalingSpectrum: {},
		ScalingDensity:  {},
	}

	validModes = map[Mode]struct{}{
		ModePSD:       {},
		ModeMagnitude: {},
	}

	validBackends = map[Backend]struct{}{
		BackendGonum: {},
		BackendGoDSP: {},
	}
)

type WindowFunction string

func (w WindowFunction) String() string {
	return string(w)
}

type Detrend string

func (d Detrend) String() string {
	return string(d)
}

type Scaling string

func (s Scaling) String() string {
	return string(s)
}

type Mode string

func (m Mode) String() string {
	return string(m)
}

type Backend string

func (b Backend) String() string {
	return string(b)
}

// Config is the acquisition and analysis configuration. It is resolved once
// by Resolve (or NewEngine) and never mutated afterwards.
type Config struct {
	// Required
	SamplingFrequency float64 `yaml:"samplingFrequency" json:"samplingFrequency"` // Hz
	FFTResolution     float64 `yaml:"fftResolution" json:"fftResolution"`         // Hz, target bin width

	// Band of interest
	FrequencyMin float64 `yaml:"frequencyMin" json:"frequencyMin"` // Hz, snapped to the nearest bin
	FrequencyMax float64 `yaml:"frequencyMax" json:"frequencyMax"` // Hz, snapped to the nearest bin
	ZeroForcing  bool    `yaml:"zeroForcing" json:"zeroForcing"`   // zero every bin outside the band

	// Post-processing
	SmoothingWindow    float64 `yaml:"smoothingWindow" json:"smoothingWindow"`       // Hz, moving average width along frequency
	BandwidthThreshold float64 `yaml:"bandwidthThreshold" json:"bandwidthThreshold"` // dB below the frame peak

	// STFT framing
	SegmentLength int `yaml:"segmentLength" json:"segmentLength"` // samples per frame
	Overlap       int `yaml:"overlap" json:"overlap"`             // samples shared by consecutive frames
	FFTLength     int `yaml:"fftLength" json:"fftLength"`         // overrides the derived FFT length when non-zero

	// Advanced
	Window     WindowFunction `yaml:"window" json:"window"`         // default: hann
	Detrend    Detrend        `yaml:"detrend" json:"detrend"`       // default: constant
	Scaling    Scaling        `yaml:"scaling" json:"scaling"`       // default: spectrum
	Mode       Mode           `yaml:"mode" json:"mode"`             // default: psd
	Workers    int            `yaml:"workers" json:"workers"`       // frames transformed in parallel, 0 or 1 is sequential
	FFTBackend Backend        `yaml:"fftBackend" json:"fftBackend"` // default: gonum
}

// DefaultConfig returns the configuration used by the original acquisition setup.
func DefaultConfig() Config {
	return Config{
		SamplingFrequency:  DefaultSamplingFrequency,
		FFTResolution:      DefaultFFTResolution,
		FrequencyMin:       DefaultFrequencyMin,
		FrequencyMax:       DefaultFrequencyMax,
		ZeroForcing:        true,
		SmoothingWindow:    DefaultSmoothingWindow,
		BandwidthThreshold: DefaultBandwidthThreshold,
		SegmentLength:      DefaultSegmentLength,
		Overlap:            DefaultOverlap,
		Window:             WindowFunctionHann,
		Detrend:            DetrendConstant,
		Scaling:            ScalingSpectrum,
		Mode:               ModePSD,
		Workers:            1,
		FFTBackend:         BackendGonum,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if !(c.SamplingFrequency > 0) || math.IsInf(c.SamplingFrequency, 0) {
		errs = append(errs, NewConfigError("samplingFrequency", "must be positive: %g", c.SamplingFrequency))
	}
	if !(c.FFTResolution > 0) || math.IsInf(c.FFTResolution, 0) {
		errs = append(errs, NewConfigError("fftResolution", "must be positive: %g", c.FFTResolution))
	}
	if !(c.SmoothingWindow >= 0) || math.IsInf(c.SmoothingWindow, 0) {
		errs = append(errs, NewConfigError("smoothingWindow", "must be finite and not negative: %g", c.SmoothingWindow))
	} else if c.SamplingFrequency > 0 && c.SmoothingWindow > c.SamplingFrequency {
		// wider than the whole axis, and the bin count could overflow int
		errs = append(errs, NewConfigError("smoothingWindow", "must not exceed samplingFrequency: %g > %g", c.SmoothingWindow, c.SamplingFrequency))
	}
	if !(c.BandwidthThreshold >= 0) || math.IsInf(c.BandwidthThreshold, 0) {
		errs = append(errs, NewConfigError("bandwidthThreshold", "must be finite and not negative: %g", c.BandwidthThreshold))
	}

	// Validate band of interest
	if !(c.FrequencyMax > c.FrequencyMin) {
		errs = append(errs, NewConfigError("frequencyMax", "must be greater than frequencyMin: %g <= %g", c.FrequencyMax, c.FrequencyMin))
	}
	if c.SamplingFrequency > 0 {
		nyquist := c.SamplingFrequency / 2
		if c.FrequencyMin < -nyquist {
			errs = append(errs, NewConfigError("frequencyMin", "must be within [%g, %g]: %g", -nyquist, nyquist, c.FrequencyMin))
		}
		if c.FrequencyMax > nyquist {
			errs = append(errs, NewConfigError("frequencyMax", "must be within [%g, %g]: %g", -nyquist, nyquist, c.FrequencyMax))
		}
	}

	// Validate framing
	if c.SegmentLength < 1 {
		errs = append(errs, NewConfigError("segmentLength", "must be positive: %d", c.SegmentLength))
	}
	if c.Overlap < 0 || (c.SegmentLength >= 1 && c.Overlap >= c.SegmentLength) {
		errs = append(errs, NewConfigError("overlap", "must be within [0, segmentLength): %d", c.Overlap))
	}
	if c.FFTLength != 0 {
		if c.FFTLength < 0 || NextPowerOfTwo(c.FFTLength) != c.FFTLength {
			errs = append(errs, NewConfigError("fftLength", "must be a power of two: %d", c.FFTLength))
		}
	}
	if c.Workers < 0 {
		errs = append(errs, NewConfigError("workers", "must not be negative: %d", c.Workers))
	}

	// Validate names
	if c.Window != "" {
		if _, ok := validWindowFunctions[c.Window]; !ok {
			errs = append(errs, NewConfigError("window", "unknown window function: %s", c.Window))
		}
	}
	if c.Detrend != "" {
		if _, ok := validDetrends[c.Detrend]; !ok {
			errs = append(errs, NewConfigError("detrend", "unknown detrend method: %s", c.Detrend))
		}
	}
	if c.Scaling != "" {
		if _, ok := validScalings[c.Scaling]; !ok {
			errs = append(errs, NewConfigError("scaling", "unknown scaling: %s", c.Scaling))
		}
	}
	if c.Mode != "" {
		if _, ok := validModes[c.Mode]; !ok {
			errs = append(errs, NewConfigError("mode", "unknown mode: %s", c.Mode))
		}
	}
	if c.FFTBackend != "" {
		if _, ok := validBackends[c.FFTBackend]; !ok {
			errs = append(errs, NewConfigError("fftBackend", "unknown FFT backend: %s", c.FFTBackend))
		}
	}

	return errors.Join(errs...)
}

// withDefaults fills in unset names.
func (c Config) withDefaults() Config {
	if c.Window == "" {
		c.Window = WindowFunctionHann
	}
	if c.Detrend == "" {
		c.Detrend = DetrendConstant
	}
	if c.Scaling == "" {
		c.Scaling = ScalingSpectrum
	}
	if c.Mode == "" {
		c.Mode = ModePSD
	}
	if c.FFTBackend == "" {
		c.FFTBackend = BackendGonum
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	return c
}
