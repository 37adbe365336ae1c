package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// SortKeyValue is one sort key evaluated at a pixel.
type SortKeyValue struct {
	// Key is the sort key name, e.g. "hue".
	Key string `json:"key"`

	// Value is the key in its natural scale: 0-255 for channel keys and
	// brightness, 0-360 for hue, 0-1 for saturation.
	Value float64 `json:"value"`

	// Threshold is the value on the 0-255 scale that lower_threshold and
	// upper_threshold are compared against.
	Threshold float64 `json:"threshold"`
}

// SortKeySample contains every sort key evaluated at one pixel.
type SortKeySample struct {
	Label string         `json:"label,omitempty"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Hex   string         `json:"hex"`   // Hex format "#RRGGBB"
	RGB   RGBColor       `json:"rgb"`   // RGB components
	Alpha uint8          `json:"alpha"` // Alpha, carried through sorting untouched
	Keys  []SortKeyValue `json:"keys"`  // One entry per sort key, in enumeration order
}

// SampleSortKeys evaluates every sort key at a specific pixel coordinate.
//
// The result shows where a pixel falls on each key's threshold scale, which is
// what a caller needs to pick lower_threshold and upper_threshold values for
// the threshold interval mode.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *SortKeySample: The pixel and its sort key values.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// # Color Conversion
//
// The pixel is converted to non-premultiplied 8-bit RGB, the same conversion
// the sort engine applies when it materializes an image.
func SampleSortKeys(img image.Image, x, y int) (*SortKeySample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := nrgbaAt(img, x, y)
	px := pixelsort.Pixel{R: c.R, G: c.G, B: c.B}

	keys := make([]SortKeyValue, 0, len(pixelsort.SortKeys()))
	for _, k := range pixelsort.SortKeys() {
		keys = append(keys, SortKeyValue{
			Key:       k.String(),
			Value:     round2(pixelsort.SortValue(px, k)),
			Threshold: round2(pixelsort.NormalizedSortValue(px, k) * 255),
		})
	}

	return &SortKeySample{
		X:     x,
		Y:     y,
		Hex:   fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:   RGBColor{R: c.R, G: c.G, B: c.B},
		Alpha: c.A,
		Keys:  keys,
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// SampleSortKeysMulti samples several points in one call. Results are in
// input order; any point outside the image fails the whole call.
func SampleSortKeysMulti(img image.Image, points []LabeledPoint) ([]SortKeySample, error) {
	results := make([]SortKeySample, 0, len(points))
	for _, p := range points {
		s, err := SampleSortKeys(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		s.Label = p.Label
		results = append(results, *s)
	}
	return results, nil
}

// histogramBuckets is the number of equal-width buckets SortKeyStats reports
// over the 0-255 threshold scale.
const histogramBuckets = 16

// SortKeyStatsResult summarizes how one sort key is distributed over a region,
// on the 0-255 threshold scale.
type SortKeyStatsResult struct {
	Key    string  `json:"key"`
	Pixels int     `json:"pixels"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	P10    float64 `json:"p10"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`

	// Histogram holds the percentage of pixels in each of 16 buckets of
	// width 16 (0-15, 16-31, ... 240-255).
	Histogram []float64 `json:"histogram"`

	// InThreshold is the percentage of pixels the threshold mode would treat
	// as in range for the given lower and upper thresholds.
	Lower       int     `json:"lower_threshold"`
	Upper       int     `json:"upper_threshold"`
	InThreshold float64 `json:"in_threshold_percent"`
}

// SortKeyStats computes the distribution of a sort key over an image or region.
//
// Parameters:
//   - img: The source image to analyze.
//   - key: The sort key to evaluate.
//   - region: Optional rectangular region to analyze. If nil, the entire image
//     is analyzed.
//   - lower, upper: Thresholds (0-255) to report coverage for; clamped like
//     sort parameters.
//
// Returns:
//   - *SortKeyStatsResult: Distribution of the key.
//   - error: Non-nil if the region is invalid or empty.
func SortKeyStats(img image.Image, key pixelsort.SortKey, region *Region, lower, upper int) (*SortKeyStatsResult, error) {
	bounds := img.Bounds()
	if region != nil {
		r, err := region.Rect(bounds)
		if err != nil {
			return nil, err
		}
		bounds = r
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot compute statistics of an empty region")
	}

	p := pixelsort.DefaultParameters()
	p.LowerThreshold, p.UpperThreshold = lower, upper
	p = p.Clamp()
	lo, hi := float64(p.LowerThreshold)/255, float64(p.UpperThreshold)/255

	values := make([]float64, 0, bounds.Dx()*bounds.Dy())
	buckets := make([]int, histogramBuckets)
	sum := 0.0
	inRange := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := nrgbaAt(img, x, y)
			v := pixelsort.NormalizedSortValue(pixelsort.Pixel{R: c.R, G: c.G, B: c.B}, key)
			if v >= lo && v <= hi {
				inRange++
			}
			scaled := v * 255
			values = append(values, scaled)
			sum += scaled
			b := int(scaled) / (256 / histogramBuckets)
			if b >= histogramBuckets {
				b = histogramBuckets - 1
			}
			buckets[b]++
		}
	}

	sort.Float64s(values)
	n := len(values)
	hist := make([]float64, histogramBuckets)
	for i, cnt := range buckets {
		hist[i] = round2(float64(cnt) / float64(n) * 100)
	}

	return &SortKeyStatsResult{
		Key:         key.String(),
		Pixels:      n,
		Min:         round2(values[0]),
		Max:         round2(values[n-1]),
		Mean:        round2(sum / float64(n)),
		P10:         round2(percentile(values, 10)),
		Median:      round2(percentile(values, 50)),
		P90:         round2(percentile(values, 90)),
		Histogram:   hist,
		Lower:       p.LowerThreshold,
		Upper:       p.UpperThreshold,
		InThreshold: round2(float64(inRange) / float64(n) * 100),
	}, nil
}

// percentile returns the nearest-rank percentile of sorted values.
func percentile(sorted []float64, pct int) float64 {
	i := (len(sorted)*pct + 99) / 100
	if i < 1 {
		i = 1
	}
	return sorted[i-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
