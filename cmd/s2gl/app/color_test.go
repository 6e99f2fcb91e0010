package app

import (
	"image/color"
	"testing"
)

func TestColorTheme_Validate(t *testing.T) {
	for theme := range validColorThemes {
		if err := theme.Validate(); err != nil {
			t.Errorf("%s: Validate() error = %v", theme, err)
		}
	}
	if err := ColorTheme("").Validate(); err != nil {
		t.Errorf("empty theme: Validate() error = %v", err)
	}
	if err := ColorTheme("neon").Validate(); err == nil {
		t.Error("unknown theme: Validate() error = nil")
	}
}

func TestColorMapper_Gradient(t *testing.T) {
	bounds := LevelBounds{Min: 0, Max: 100}

	for theme := range validColorThemes {
		t.Run(theme.String(), func(t *testing.T) {
			cm := NewColorMapper(theme, bounds)
			if cm.Size() != DefaultColorMapSize {
				t.Fatalf("Size() = %d, want %d", cm.Size(), DefaultColorMapSize)
			}
			if cm.Theme() != theme {
				t.Errorf("Theme() = %s, want %s", cm.Theme(), theme)
			}

			for i, c := range cm.colors {
				if _, _, _, a := c.RGBA(); a != 0xffff {
					t.Fatalf("colors[%d] is not opaque: %v", i, c)
				}
			}

			low, high := -50.0, 150.0
			if cm.Color(&low) != cm.colors[0] {
				t.Error("level below the bounds does not map to the first colour")
			}
			if cm.Color(&high) != cm.colors[cm.Size()-1] {
				t.Error("level above the bounds does not map to the last colour")
			}
			if cm.Color(nil) != NoDataColor {
				t.Error("nil level does not map to NoDataColor")
			}
		})
	}
}

func TestColorMapper_GrayscaleIsMonotonic(t *testing.T) {
	cm := NewColorMapperWithSize(GrayscaleTheme, LevelBounds{Min: 0, Max: 10}, 11)

	var prev uint32
	for i := range cm.Size() {
		level := float64(i)
		r, g, b, _ := cm.Color(&level).RGBA()
		if r != g || g != b {
			t.Fatalf("level %v: not gray: %d %d %d", level, r, g, b)
		}
		if i > 0 && r < prev {
			t.Fatalf("level %v: %d darker than %d", level, r, prev)
		}
		prev = r
	}
}

func TestColorMapper_UpdateBounds(t *testing.T) {
	cm := NewColorMapperWithSize(ThermalTheme, LevelBounds{Min: 0, Max: 10}, 16)
	level := 10.0
	if cm.Color(&level) != cm.colors[15] {
		t.Fatal("top of the bounds does not map to the last colour")
	}

	cm.UpdateBounds(LevelBounds{Min: 10, Max: 20})
	if cm.Color(&level) != cm.colors[0] {
		t.Error("bottom of the new bounds does not map to the first colour")
	}

	cm.UpdateBounds(LevelBounds{Min: 5, Max: 5})
	if cm.Color(&level) != color.Color(cm.colors[0]) {
		t.Error("empty bounds do not map to the first colour")
	}
}
