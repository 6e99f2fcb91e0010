package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme is a colour scheme for levels on the heatmap
type ColorTheme string

const (
	EnhancedTheme  ColorTheme = "enhanced"  // black, blue, cyan, yellow, red
	ClassicTheme   ColorTheme = "classic"   // blue to red
	GrayscaleTheme ColorTheme = "grayscale" // black to white
	JungleTheme    ColorTheme = "jungle"    // dark green to yellow
	ThermalTheme   ColorTheme = "thermal"   // black, red, yellow, white
	MarineTheme    ColorTheme = "marine"    // deep blue to pale cyan

	DefaultColorMapSize = 256
)

var (
	validColorThemes = map[ColorTheme]struct{}{
		EnhancedTheme:  {},
		ClassicTheme:   {},
		GrayscaleTheme: {},
		JungleTheme:    {},
		ThermalTheme:   {},
		MarineTheme:    {},
	}

	// NoDataColor is used for bins without a level, such as zero-forced ones
	NoDataColor color.Color = color.Black
)

func (t ColorTheme) String() string {
	return string(t)
}

// Validate reports whether the theme is known. An empty theme selects the default.
func (t ColorTheme) Validate() error {
	if t == "" {
		return nil
	}
	if _, ok := validColorThemes[t]; !ok {
		return fmt.Errorf("unknown color theme: %s", t)
	}
	return nil
}

// ColorMapper maps levels onto a precomputed colour gradient
type ColorMapper struct {
	colors   []color.Color
	theme    ColorTheme
	min      float64 // dB at index 0
	perIndex float64 // dB per gradient step
}

// NewColorMapper creates a mapper with DefaultColorMapSize colours
func NewColorMapper(theme ColorTheme, bounds LevelBounds) *ColorMapper {
	return NewColorMapperWithSize(theme, bounds, DefaultColorMapSize)
}

// NewColorMapperWithSize creates a mapper with size colours
func NewColorMapperWithSize(theme ColorTheme, bounds LevelBounds, size int) *ColorMapper {
	if size < 2 {
		size = DefaultColorMapSize
	}

	fn := themeFunc(theme)
	cm := ColorMapper{
		colors: make([]color.Color, size),
		theme:  theme,
	}
	for i := range cm.colors {
		cm.colors[i] = fn(float64(i) / float64(size-1))
	}
	cm.UpdateBounds(bounds)

	return &cm
}

// UpdateBounds changes the level range spanned by the gradient
func (cm *ColorMapper) UpdateBounds(bounds LevelBounds) {
	cm.min = bounds.Min
	cm.perIndex = (bounds.Max - bounds.Min) / float64(len(cm.colors)-1)
}

// Color returns the colour of a level; nil levels get NoDataColor
func (cm *ColorMapper) Color(level *float64) color.Color {
	if level == nil {
		return NoDataColor
	}
	if cm.perIndex <= 0 {
		return cm.colors[0]
	}

	index := int((*level - cm.min) / cm.perIndex)
	return cm.colors[max(0, min(index, len(cm.colors)-1))]
}

// Theme returns the colour theme
func (cm *ColorMapper) Theme() ColorTheme {
	return cm.theme
}

// Size returns the number of colours in the gradient
func (cm *ColorMapper) Size() int {
	return len(cm.colors)
}

func hsv(h, s, v float64) color.Color {
	return colorful.Hsv(math.Mod(h+360, 360), clamp01(s), clamp01(v))
}

func gray(v float64) color.Color {
	v = clamp01(v)
	return colorful.Color{R: v, G: v, B: v}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// themeFunc returns the gradient of a theme over normalized levels in [0, 1]
func themeFunc(theme ColorTheme) func(float64) color.Color {
	switch theme {
	case ClassicTheme:
		return func(l float64) color.Color {
			return hsv(240-l*240, 0.9+l*0.1, math.Pow(l, 0.7))
		}

	case GrayscaleTheme:
		return func(l float64) color.Color {
			return gray(math.Pow(l, 0.7))
		}

	case JungleTheme:
		return func(l float64) color.Color {
			return hsv(120-l*60, 1, 0.3+math.Pow(l, 0.6)*0.7)
		}

	case ThermalTheme:
		return func(l float64) color.Color {
			switch {
			case l < 1.0/3:
				return colorful.Color{R: l * 3}
			case l < 2.0/3:
				return colorful.Color{R: 1, G: (l - 1.0/3) * 3}
			default:
				return colorful.Color{R: 1, G: 1, B: clamp01((l - 2.0/3) * 3)}
			}
		}

	case MarineTheme:
		return func(l float64) color.Color {
			return hsv(240-l*60, 1-l*0.8, 0.3+math.Pow(l, 0.6)*0.7)
		}

	default:
		return func(l float64) color.Color {
			l = clamp01(l)
			boosted := math.Pow(l, 0.7)

			switch {
			case l < 0.25:
				return hsv(240, 1, boosted*4)
			case l < 0.5:
				return hsv(240-(l-0.25)*240, 1, boosted*1.5)
			case l < 0.75:
				return hsv(180-(l-0.5)*4*120, 1, boosted*1.5)
			default:
				return hsv(60-(l-0.75)*4*60, 1, 1)
			}
		}
	}
}
