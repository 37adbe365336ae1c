package pixelsort

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSortValue(t *testing.T) {
	tests := []struct {
		name string
		px   Pixel
		key  SortKey
		want float64
	}{
		{"brightness white", Pixel{255, 255, 255}, Brightness, 255},
		{"brightness black", Pixel{0, 0, 0}, Brightness, 0},
		{"brightness red", Pixel{255, 0, 0}, Brightness, 76.245},
		{"intensity", Pixel{30, 60, 90}, Intensity, 60},
		{"minimum", Pixel{30, 60, 90}, Minimum, 30},
		{"red channel", Pixel{30, 60, 90}, Red, 30},
		{"green channel", Pixel{30, 60, 90}, Green, 60},
		{"blue channel", Pixel{30, 60, 90}, Blue, 90},
		{"hue red", Pixel{255, 0, 0}, Hue, 0},
		{"hue yellow", Pixel{255, 255, 0}, Hue, 60},
		{"hue green", Pixel{0, 255, 0}, Hue, 120},
		{"hue blue", Pixel{0, 0, 255}, Hue, 240},
		{"hue magenta", Pixel{255, 0, 255}, Hue, 300},
		{"hue gray is zero", Pixel{128, 128, 128}, Hue, 0},
		{"saturation pure", Pixel{255, 0, 0}, Saturation, 1},
		{"saturation black", Pixel{0, 0, 0}, Saturation, 0},
		{"saturation gray", Pixel{90, 90, 90}, Saturation, 0},
		{"saturation pastel", Pixel{255, 128, 128}, Saturation, 127.0 / 255.0},
		{"unknown key is brightness", Pixel{255, 0, 0}, SortKey(42), 76.245},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortValue(tt.px, tt.key)
			if !approxEqual(got, tt.want) {
				t.Errorf("SortValue(%v, %s) = %v, want %v", tt.px, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizedSortValue(t *testing.T) {
	tests := []struct {
		name string
		px   Pixel
		key  SortKey
		want float64
	}{
		{"brightness white", Pixel{255, 255, 255}, Brightness, 1},
		{"hue blue", Pixel{0, 0, 255}, Hue, 240.0 / 360.0},
		{"saturation unchanged", Pixel{255, 128, 128}, Saturation, 127.0 / 255.0},
		{"red channel", Pixel{51, 0, 0}, Red, 0.2},
		{"minimum", Pixel{102, 200, 250}, Minimum, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizedSortValue(tt.px, tt.key)
			if !approxEqual(got, tt.want) {
				t.Errorf("NormalizedSortValue(%v, %s) = %v, want %v", tt.px, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizedSortValue_UnitRange(t *testing.T) {
	for _, key := range SortKeys() {
		for r := 0; r < 256; r += 15 {
			for g := 0; g < 256; g += 15 {
				for b := 0; b < 256; b += 15 {
					v := NormalizedSortValue(Pixel{uint8(r), uint8(g), uint8(b)}, key)
					if v < 0 || v > 1+1e-9 {
						t.Fatalf("%s of (%d,%d,%d) = %v, outside [0,1]", key, r, g, b, v)
					}
				}
			}
		}
	}
}
