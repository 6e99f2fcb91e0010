package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// flags are the command line overrides of the configuration file
type flags struct {
	configPath string
	verbose    bool

	frequencyMin float64
	frequencyMax float64
	resolution   float64
	zeroForcing  bool
	workers      int
	threshold    float64

	theme  string
	format string
	output string
}

// apply copies every flag set on the command line over the configuration
func (f *flags) apply(cmd *cobra.Command, config *Config) {
	changed := cmd.Flags().Changed

	if changed("freq-min") {
		config.Analysis.FrequencyMin = f.frequencyMin
	}
	if changed("freq-max") {
		config.Analysis.FrequencyMax = f.frequencyMax
	}
	if changed("resolution") {
		config.Analysis.FFTResolution = f.resolution
	}
	if changed("zero-forcing") {
		config.Analysis.ZeroForcing = f.zeroForcing
	}
	if changed("workers") {
		config.Analysis.Workers = f.workers
	}
	if changed("threshold") {
		config.Analysis.BandwidthThreshold = f.threshold
	}
	if changed("theme") {
		config.Render.Theme = ColorTheme(strings.ToLower(f.theme))
	}
	if changed("format") {
		config.Render.Format = ImageFormat(strings.ToLower(f.format))
	}
	if f.verbose {
		config.Settings.LogLevel = slog.LevelDebug
	}
}

// outputBase returns the output flag, or the dump path without its extension
func (f *flags) outputBase(dumpPath string) string {
	if f.output != "" {
		return f.output
	}
	return strings.TrimSuffix(dumpPath, filepath.Ext(dumpPath))
}

// NewCommand builds the s2gl command tree. The log level is raised or lowered
// once the configuration is loaded.
func NewCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var f flags
	var config *Config

	root := &cobra.Command{
		Use:   "s2gl",
		Short: "Analyse Sense2GoL Doppler radar IF dumps",
		Long: `s2gl extracts the raw I and Q samples from a Sense2GoL serial dump and
computes the short-time Fourier transform of the complex IF signal.

Positive frequencies are approaching targets, negative ones receding targets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if config, err = LoadConfig(f.configPath); err != nil {
				return err
			}
			f.apply(cmd, config)
			level.Set(config.Settings.LogLevel)

			if err = config.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "path to the YAML configuration file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	pf.Float64Var(&f.frequencyMin, "freq-min", 0, "lower bound of the band of interest in Hz")
	pf.Float64Var(&f.frequencyMax, "freq-max", 0, "upper bound of the band of interest in Hz")
	pf.Float64Var(&f.resolution, "resolution", 0, "target FFT resolution in Hz")
	pf.BoolVar(&f.zeroForcing, "zero-forcing", true, "zero every bin outside the band of interest")
	pf.IntVar(&f.workers, "workers", 0, "number of frames transformed in parallel")

	spectrogram := &cobra.Command{
		Use:   "spectrogram <dump.txt>",
		Short: "Render the spectrogram heatmap of a dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSpectrogram(cmd.Context(), config, args[0], f.outputBase(args[0]), logger)
		},
	}
	spectrogram.Flags().StringVarP(&f.output, "output", "o", "", "output file name without extension (default: dump name)")
	spectrogram.Flags().StringVar(&f.theme, "theme", string(EnhancedTheme), "color theme [enhanced, classic, grayscale, jungle, thermal, marine]")
	spectrogram.Flags().StringVarP(&f.format, "format", "f", string(ImagePNG), "image format [png, jpeg]")

	traces := &cobra.Command{
		Use:   "traces <dump.txt>",
		Short: "Plot the IFI and IFQ traces of a dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTraces(cmd.Context(), config, args[0], f.outputBase(args[0]), logger)
		},
	}
	traces.Flags().StringVarP(&f.output, "output", "o", "", "output file name without suffix and extension (default: dump name)")
	traces.Flags().StringVarP(&f.format, "format", "f", string(ImagePNG), "image format [png, jpeg]")

	occupancy := &cobra.Command{
		Use:   "occupancy <dump.txt>",
		Short: "Log the occupied bandwidth of every frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunOccupancy(cmd.Context(), config, args[0], logger)
		},
	}
	occupancy.Flags().Float64Var(&f.threshold, "threshold", 0, "level below the frame peak still counted as occupied, in dB")

	params := &cobra.Command{
		Use:   "params",
		Short: "Log the analysis parameters derived from the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunParams(config, logger)
		},
	}

	root.AddCommand(spectrogram, traces, occupancy, params)
	return root
}
