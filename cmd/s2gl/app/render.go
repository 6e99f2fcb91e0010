package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	dpi            = 96.0
	fontSize       = 10.0
	tickMarkLength = 5
	pixelsPerLabel = 120.0
	pixelsPerTick  = 40.0

	defaultRowHeight = 8

	defaultTopBorder    = 30
	defaultLeftBorder   = 70
	defaultBottomBorder = 30
	defaultRightBorder  = 40

	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
)

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

// ImageFormat is the encoding of rendered images
type ImageFormat string

func (f ImageFormat) String() string {
	return string(f)
}

// Validate reports whether the format is known
func (f ImageFormat) Validate() error {
	if _, ok := validImageFormats[f]; !ok {
		return fmt.Errorf("unknown image format: %s", f)
	}
	return nil
}

// BorderConfig is the white space around the heatmap, in pixels
type BorderConfig struct {
	Top    int // frequency scale
	Left   int // time scale
	Bottom int // info bar
	Right  int
}

// RenderConfig holds the heatmap rendering options
type RenderConfig struct {
	FontSize      float64
	ColorTheme    ColorTheme
	ColorMapSize  int
	RowHeight     int // pixels per frame
	NoAnnotations bool
	Borders       BorderConfig
}

// SpectrumRenderer draws spectrograms as heatmaps: frequency runs left to
// right, time top to bottom.
type SpectrumRenderer struct {
	config RenderConfig
	font   *truetype.Font
}

// NewSpectrumRenderer creates a renderer, filling unset options with defaults
func NewSpectrumRenderer(config RenderConfig) (*SpectrumRenderer, error) {
	if err := config.ColorTheme.Validate(); err != nil {
		return nil, err
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.RowHeight <= 0 {
		config.RowHeight = defaultRowHeight
	}
	if config.NoAnnotations {
		config.Borders = BorderConfig{}
	} else {
		if config.Borders.Top == 0 {
			config.Borders.Top = defaultTopBorder
		}
		if config.Borders.Left == 0 {
			config.Borders.Left = defaultLeftBorder
		}
		if config.Borders.Bottom == 0 {
			config.Borders.Bottom = defaultBottomBorder
		}
		if config.Borders.Right == 0 {
			config.Borders.Right = defaultRightBorder
		}
	}

	parsed, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	return &SpectrumRenderer{config: config, font: parsed}, nil
}

// Render draws the spectrum with its annotations
func (r *SpectrumRenderer) Render(spec *SpectrumData) (*image.RGBA, error) {
	if spec.Width == 0 || spec.Height == 0 {
		return nil, errors.New("nothing to render: empty spectrum")
	}

	b := r.config.Borders
	height := spec.Height * r.config.RowHeight

	img := image.NewRGBA(image.Rect(0, 0, b.Left+spec.Width+b.Right, b.Top+height+b.Bottom))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	area := image.Rect(b.Left, b.Top, b.Left+spec.Width, b.Top+height)
	mapper := NewColorMapperWithSize(r.config.ColorTheme, spec.BoundsTracker.Current(), r.config.ColorMapSize)

	if !r.config.NoAnnotations {
		ann := r.newAnnotator()
		defer ann.Close()

		if err := ann.annotate(img, area, spec); err != nil {
			return nil, fmt.Errorf("drawing annotations: %w", err)
		}
	}

	for t, span := range spec.Spans {
		top := area.Min.Y + t*r.config.RowHeight
		for f, level := range span {
			c := mapper.Color(level)
			for dy := range r.config.RowHeight {
				img.Set(area.Min.X+f, top+dy, c)
			}
		}
	}

	return img, nil
}

// Encode writes the image in the given format
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case ImagePNG:
		return png.Encode(w, img)
	case ImageJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 98})
	default:
		return format.Validate()
	}
}

type annotator struct {
	context  *freetype.Context
	fontFace font.Face
	config   RenderConfig
}

func (r *SpectrumRenderer) newAnnotator() *annotator {
	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(r.font)
	ctx.SetFontSize(r.config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  r.config,
		fontFace: truetype.NewFace(r.font, &truetype.Options{
			Size:    r.config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}
}

func (a *annotator) Close() error {
	return a.fontFace.Close()
}

func (a *annotator) annotate(img *image.RGBA, area image.Rectangle, spec *SpectrumData) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func(*image.RGBA, image.Rectangle, *SpectrumData) error
	}{
		{"drawing frequency scale", a.drawFrequencyScale},
		{"drawing time scale", a.drawTimeScale},
		{"drawing info bar", a.drawInfoBar},
	}
	for _, op := range ops {
		if err := op.fn(img, area, spec); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return nil
}

func (a *annotator) fontHeight() (height, descent int) {
	metrics := a.fontFace.Metrics()
	return (metrics.Ascent + metrics.Descent).Round(), metrics.Descent.Round()
}

func (a *annotator) drawFrequencyScale(img *image.RGBA, area image.Rectangle, spec *SpectrumData) error {
	step := niceStep(spec.FrequencyMax-spec.FrequencyMin, float64(spec.Width)/pixelsPerLabel)
	_, descent := a.fontHeight()
	textY := area.Min.Y - tickMarkLength - descent - 2

	for freq := math.Ceil(spec.FrequencyMin/step) * step; freq <= spec.FrequencyMax; freq += step {
		x := area.Min.X + int(math.Round((freq-spec.FrequencyMin)/spec.Resolution))

		for y := area.Min.Y - tickMarkLength; y < area.Min.Y; y++ {
			img.Set(x, y, color.Black)
		}

		label := formatHz(freq)
		width := font.MeasureString(a.fontFace, label).Round()
		if _, err := a.context.DrawString(label, freetype.Pt(x-width/2, textY)); err != nil {
			return fmt.Errorf("drawing frequency label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawTimeScale(img *image.RGBA, area image.Rectangle, spec *SpectrumData) error {
	fontHeight, descent := a.fontHeight()
	rowHeight := float64(a.config.RowHeight)

	// frame spacing in seconds
	var frameStep float64
	if spec.Height > 1 {
		frameStep = (spec.TimeEnd - spec.TimeStart) / float64(spec.Height-1)
	}

	// the first frame is always labelled, then round multiples of step
	labels := []float64{spec.TimeStart}
	if frameStep > 0 {
		step := niceStep(spec.TimeEnd-spec.TimeStart, float64(area.Dy())/pixelsPerTick)
		for t := math.Ceil((spec.TimeStart+step/2)/step) * step; t <= spec.TimeEnd+step/1e6; t += step {
			labels = append(labels, t)
		}
	}

	for _, t := range labels {
		y := area.Min.Y + int(rowHeight/2)
		if frameStep > 0 {
			y += int(math.Round((t - spec.TimeStart) / frameStep * rowHeight))
		}

		for x := area.Min.X - tickMarkLength; x < area.Min.X; x++ {
			img.Set(x, y, color.Black)
		}

		label := fmt.Sprintf("%.2f s", t)
		width := font.MeasureString(a.fontFace, label).Round()
		pt := freetype.Pt(area.Min.X-tickMarkLength-width-3, y+fontHeight/2-descent)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing time label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, area image.Rectangle, spec *SpectrumData) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Band: %s to %s", formatHz(spec.FrequencyMin), formatHz(spec.FrequencyMax))
	fmt.Fprintf(&sb, "; Duration: %.2f s", spec.Duration)
	fmt.Fprintf(&sb, "; Fs: %s", formatHz(spec.SamplingFrequency))
	fmt.Fprintf(&sb, "; 1px = %s", formatHz(spec.Resolution))

	fontHeight, descent := a.fontHeight()
	textY := img.Bounds().Max.Y - (a.config.Borders.Bottom-fontHeight)/2 - descent

	if _, err := a.context.DrawString(sb.String(), freetype.Pt(area.Min.X, textY)); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}
	return nil
}

// niceStep returns a 1, 2 or 5 times power-of-ten step that divides span
// into at most labels intervals.
func niceStep(span, labels float64) float64 {
	if span <= 0 {
		return 1
	}
	labels = math.Max(1, labels)

	rough := span / labels
	magnitude := math.Pow(10, math.Floor(math.Log10(rough)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= rough {
			return step
		}
	}
	return 10 * magnitude
}

func formatHz(hz float64) string {
	value, prefix := humanize.ComputeSI(hz)
	return humanize.FtoaWithDigits(value, 2) + " " + prefix + "Hz"
}
