package pixelsort

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Pixel is an RGB triple with 8-bit components.
type Pixel struct {
	R, G, B uint8
}

// SortValue returns the raw ordering key of p under key.
//
// Each key keeps its natural scale:
//   - Brightness: ITU-R BT.601 luma, 0.299*R + 0.587*G + 0.114*B (0-255)
//   - Hue: HSV hue in degrees [0,360), 0 for achromatic pixels
//   - Saturation: HSV saturation (max-min)/max in [0,1], 0 for black
//   - Intensity: channel mean (0-255)
//   - Minimum: smallest channel (0-255)
//   - Red, Green, Blue: the raw channel (0-255)
//
// Unknown keys are evaluated as Brightness.
func SortValue(p Pixel, key SortKey) float64 {
	switch key {
	case Hue:
		h, _, _ := hsv(p)
		return h
	case Saturation:
		_, s, _ := hsv(p)
		return s
	case Intensity:
		return (float64(p.R) + float64(p.G) + float64(p.B)) / 3
	case Minimum:
		return float64(min(p.R, p.G, p.B))
	case Red:
		return float64(p.R)
	case Green:
		return float64(p.G)
	case Blue:
		return float64(p.B)
	default:
		return luma(p)
	}
}

// NormalizedSortValue returns the ordering key of p rescaled into [0,1].
//
// Threshold bounds are expressed in 0-255 terms for every key, so hue is
// divided by 360, saturation is used as-is and everything else is divided
// by 255. The normalized form is only used for threshold comparisons; sorting
// always uses SortValue.
func NormalizedSortValue(p Pixel, key SortKey) float64 {
	switch key {
	case Hue:
		return SortValue(p, Hue) / 360
	case Saturation:
		return SortValue(p, Saturation)
	default:
		return SortValue(p, key) / 255
	}
}

func luma(p Pixel) float64 {
	return 0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)
}

func hsv(p Pixel) (h, s, v float64) {
	c := colorful.Color{
		R: float64(p.R) / 255,
		G: float64(p.G) / 255,
		B: float64(p.B) / 255,
	}
	h, s, v = c.Hsv()
	if h >= 360 {
		h -= 360
	}
	return h, s, v
}
