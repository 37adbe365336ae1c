package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func keyValue(t *testing.T, s *SortKeySample, key string) SortKeyValue {
	t.Helper()
	for _, k := range s.Keys {
		if k.Key == key {
			return k
		}
	}
	t.Fatalf("sample has no %q key", key)
	return SortKeyValue{}
}

func TestSampleSortKeys(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 128, 64, 255})

	result, err := SampleSortKeys(img, 5, 5)
	if err != nil {
		t.Fatalf("SampleSortKeys failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (RGBColor{255, 128, 64}) || result.Alpha != 255 {
		t.Errorf("RGB: got %v alpha %d", result.RGB, result.Alpha)
	}
	if len(result.Keys) != len(pixelsort.SortKeys()) {
		t.Fatalf("got %d keys, want %d", len(result.Keys), len(pixelsort.SortKeys()))
	}

	tests := []struct {
		key           string
		value, thresh float64
	}{
		{"red", 255, 255},
		{"green", 128, 128},
		{"blue", 64, 64},
		{"minimum", 64, 64},
		{"intensity", 149, 149},
		{"saturation", 0.75, 191},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := keyValue(t, result, tt.key)
			if got.Value != tt.value || got.Threshold != tt.thresh {
				t.Errorf("got value %v threshold %v, want %v / %v", got.Value, got.Threshold, tt.value, tt.thresh)
			}
		})
	}

	hue := keyValue(t, result, "hue")
	if hue.Value < 20 || hue.Value > 21 {
		t.Errorf("hue: got %v, want about 20", hue.Value)
	}
}

func TestSampleSortKeys_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := SampleSortKeys(img, pt[0], pt[1]); err == nil {
			t.Errorf("(%d,%d) should be out of bounds", pt[0], pt[1])
		}
	}
}

func TestSampleSortKeysMulti(t *testing.T) {
	img := createPatternImage(100, 100)

	points := []LabeledPoint{
		{X: 10, Y: 10, Label: "red"},
		{X: 90, Y: 10, Label: "green"},
		{X: 90, Y: 90},
	}
	results, err := SampleSortKeysMulti(img, points)
	if err != nil {
		t.Fatalf("SampleSortKeysMulti failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d samples, want 3", len(results))
	}
	if results[0].Label != "red" || results[0].Hex != "#FF0000" {
		t.Errorf("first sample: %+v", results[0])
	}
	if results[1].Hex != "#00FF00" || results[1].X != 90 {
		t.Errorf("second sample: %+v", results[1])
	}
	if results[2].Label != "" || results[2].Hex != "#FFFFFF" {
		t.Errorf("third sample: %+v", results[2])
	}

	if _, err := SampleSortKeysMulti(img, []LabeledPoint{{X: 1, Y: 1}, {X: 500, Y: 1}}); err == nil {
		t.Error("expected error when any point is out of bounds")
	}
}

func TestSortKeyStats(t *testing.T) {
	// Top half black, bottom half white.
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := 50; i < 100; i++ {
		img.Pix[i] = 255
	}

	stats, err := SortKeyStats(img, pixelsort.Brightness, nil, 128, 255)
	if err != nil {
		t.Fatalf("SortKeyStats failed: %v", err)
	}
	if stats.Key != "brightness" || stats.Pixels != 100 {
		t.Errorf("key/pixels: %s/%d", stats.Key, stats.Pixels)
	}
	if stats.Min != 0 || stats.Max != 255 || stats.Mean != 127.5 {
		t.Errorf("min/max/mean: %v/%v/%v", stats.Min, stats.Max, stats.Mean)
	}
	if stats.P10 != 0 || stats.Median != 0 || stats.P90 != 255 {
		t.Errorf("percentiles: %v/%v/%v", stats.P10, stats.Median, stats.P90)
	}
	if stats.InThreshold != 50 {
		t.Errorf("InThreshold: got %v, want 50", stats.InThreshold)
	}
	if len(stats.Histogram) != 16 || stats.Histogram[0] != 50 || stats.Histogram[15] != 50 {
		t.Errorf("histogram: %v", stats.Histogram)
	}
}

func TestSortKeyStats_Region(t *testing.T) {
	img := createPatternImage(20, 20)

	stats, err := SortKeyStats(img, pixelsort.Red, &Region{X1: 0, Y1: 0, X2: 10, Y2: 10}, 300, 0)
	if err != nil {
		t.Fatalf("SortKeyStats failed: %v", err)
	}
	if stats.Pixels != 100 || stats.Min != 255 || stats.Max != 255 {
		t.Errorf("red quadrant: %+v", stats)
	}
	// Thresholds are clamped like sort parameters: 300 -> 255, upper raised to lower.
	if stats.Lower != 255 || stats.Upper != 255 || stats.InThreshold != 100 {
		t.Errorf("clamped thresholds: %d-%d, in range %v", stats.Lower, stats.Upper, stats.InThreshold)
	}

	if _, err := SortKeyStats(img, pixelsort.Red, &Region{X1: 5, Y1: 5, X2: 50, Y2: 10}, 0, 255); err == nil {
		t.Error("expected error for region outside bounds")
	}
}
