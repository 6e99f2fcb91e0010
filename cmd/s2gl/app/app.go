package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/doppler-if/internal/dump"
	"github.com/roman-kulish/doppler-if/internal/iq"
	"github.com/roman-kulish/doppler-if/internal/spectrum"
)

// boundsSmoothing is the exponential smoothing factor of the heatmap level bounds
const boundsSmoothing = 0.3

// RunParams logs the analysis parameters derived from the configuration
func RunParams(config *Config, logger *slog.Logger) error {
	params, err := spectrum.Resolve(config.Analysis)
	if err != nil {
		return fmt.Errorf("resolving analysis parameters: %w", err)
	}

	logParams(logger, params)
	return nil
}

// RunSpectrogram renders the spectrogram of a dump to <output>.<format>
func RunSpectrogram(ctx context.Context, config *Config, dumpPath, output string, logger *slog.Logger) error {
	res, err := analyse(ctx, config, dumpPath, logger)
	if err != nil {
		return err
	}

	spec := NewSpectrumData(res, NewSmoothBounds(boundsSmoothing))
	bounds := spec.BoundsTracker.Settle()

	logger.Info("spectrogram computed",
		slog.Group("stats",
			slog.Int("frames", spec.Height),
			slog.Int("bins", spec.Width),
			slog.String("duration", fmt.Sprintf("%.2fs", spec.Duration)),
			slog.String("minLevel", fmt.Sprintf("%.2fdB", bounds.Min)),
			slog.String("maxLevel", fmt.Sprintf("%.2fdB", bounds.Max)),
		))

	renderer, err := NewSpectrumRenderer(RenderConfig{
		ColorTheme:    config.Render.Theme,
		RowHeight:     config.Render.RowHeight,
		NoAnnotations: config.Render.NoAnnotations,
	})
	if err != nil {
		return fmt.Errorf("creating spectrum renderer: %w", err)
	}

	img, err := renderer.Render(spec)
	if err != nil {
		return fmt.Errorf("rendering spectrum: %w", err)
	}

	path := fmt.Sprintf("%s.%s", output, config.Render.Format)
	logger.Info("writing spectrogram",
		slog.Group("image",
			slog.String("destination", path),
			slog.String("format", config.Render.Format.String()),
			slog.String("theme", config.Render.Theme.String()),
			slog.Int("width", img.Bounds().Dx()),
			slog.Int("height", img.Bounds().Dy()),
		))

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Encode(out, img, config.Render.Format); err != nil {
		_ = out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return out.Close()
}

// RunTraces plots the IFI and IFQ traces of a dump
func RunTraces(ctx context.Context, config *Config, dumpPath, output string, logger *slog.Logger) error {
	sig, err := loadSignal(ctx, dumpPath, logger)
	if err != nil {
		return err
	}

	ifi, ifq := TracePaths(output, config.Render.Format)
	logger.Info("plotting traces", slog.String("ifi", ifi), slog.String("ifq", ifq))

	return WriteTraces(sig, output, config.Render.Format)
}

// RunOccupancy logs the occupied band of every frame of a dump
func RunOccupancy(ctx context.Context, config *Config, dumpPath string, logger *slog.Logger) error {
	res, err := analyse(ctx, config, dumpPath, logger)
	if err != nil {
		return err
	}

	var silent int
	for _, o := range res.Occupancy(config.Analysis.BandwidthThreshold) {
		if o.Bins == 0 {
			silent++
			continue
		}
		logger.Info("occupancy",
			slog.Int("frame", o.Frame),
			slog.String("time", fmt.Sprintf("%.3fs", o.Time)),
			slog.String("peak", formatHz(o.PeakFrequency)),
			slog.String("level", fmt.Sprintf("%.2fdB", o.PeakLevelDB)),
			slog.String("low", formatHz(o.LowFrequency)),
			slog.String("high", formatHz(o.HighFrequency)),
			slog.String("bandwidth", formatHz(o.Bandwidth())),
		)
	}

	logger.Info("occupancy computed",
		slog.Group("stats",
			slog.Int("frames", res.Cols()),
			slog.Int("silent", silent),
			slog.String("threshold", fmt.Sprintf("%gdB", config.Analysis.BandwidthThreshold)),
		))
	return nil
}

func analyse(ctx context.Context, config *Config, dumpPath string, logger *slog.Logger) (*spectrum.Result, error) {
	engine, err := spectrum.NewEngine(config.Analysis, spectrum.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating spectrogram engine: %w", err)
	}
	logParams(logger, engine.Params())

	sig, err := loadSignal(ctx, dumpPath, logger)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	res, err := engine.Compute(sig)
	if err != nil {
		return nil, fmt.Errorf("computing spectrogram: %w", err)
	}
	return res, nil
}

func loadSignal(ctx context.Context, dumpPath string, logger *slog.Logger) (iq.Signal, error) {
	if err := ctx.Err(); err != nil {
		return iq.Signal{}, err
	}

	i, q, err := dump.ParseFile(dumpPath, dump.WithLogger(logger))
	if err != nil {
		return iq.Signal{}, fmt.Errorf("parsing dump: %w", err)
	}

	sig := iq.Assemble(i, q)
	logger.Info("signal assembled",
		slog.String("source", dumpPath),
		slog.Group("stats",
			slog.String("iSamples", humanize.Comma(int64(len(i)))),
			slog.String("qSamples", humanize.Comma(int64(len(q)))),
			slog.String("samples", humanize.Comma(int64(sig.Len()))),
		))
	if len(i) != len(q) {
		logger.Warn("unbalanced channels, truncating to the shorter one",
			slog.Int("dropped", max(len(i), len(q))-sig.Len()))
	}

	return sig, nil
}

func logParams(logger *slog.Logger, p spectrum.Params) {
	logger.Info("analysis parameters",
		slog.Group("fft",
			slog.Int("bins", p.FFTBins),
			slog.String("resolution", formatHz(p.Resolution)),
			slog.Int("smoothingBins", p.SmoothingBins),
			slog.String("window", p.Config.Window.String()),
			slog.String("backend", p.Config.FFTBackend.String()),
		),
		slog.Group("band",
			slog.String("min", formatHz(p.FrequencyMin)),
			slog.String("max", formatHz(p.FrequencyMax)),
			slog.Int("minBin", p.MinBin),
			slog.Int("maxBin", p.MaxBin),
			slog.Bool("zeroForcing", p.Config.ZeroForcing),
		),
		slog.Group("stft",
			slog.String("fs", formatHz(p.Config.SamplingFrequency)),
			slog.Int("segment", p.Config.SegmentLength),
			slog.Int("overlap", p.Config.Overlap),
		))
}
