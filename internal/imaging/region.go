package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect validates the region against bounds and returns it as a rectangle.
func (r Region) Rect(bounds image.Rectangle) (image.Rectangle, error) {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return image.Rectangle{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2), nil
}

// NamedRegion resolves a named part of bounds to a Region.
//
// Supported names: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half, and center (the middle 50% on each
// axis).
func NamedRegion(bounds image.Rectangle, name string) (Region, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch name {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}

	o := bounds.Min
	return Region{X1: o.X + x1, Y1: o.Y + y1, X2: o.X + x2, Y2: o.Y + y2}, nil
}

// RegionMask builds a selection mask over bounds that selects region.
//
// Pixels outside the region are unselected (0). With feather 0 every pixel
// inside is fully selected (255). A positive feather ramps strength up over
// the outermost feather pixels of the region: the pixel at distance d (1 on
// the edge itself) from the nearest region edge gets 255*d/(feather+1), and
// pixels deeper than feather get 255. Sorted colour is blended over the
// original in the ramp.
//
// Parameters:
//   - bounds: Bounds of the image the mask is for.
//   - region: The selected rectangle; must lie inside bounds.
//   - feather: Width of the soft edge in pixels; must not be negative.
//
// Returns:
//   - *image.Gray: The mask, with bounds equal to bounds.
//   - error: Non-nil if the region is invalid or feather is negative.
func RegionMask(bounds image.Rectangle, region Region, feather int) (*image.Gray, error) {
	rect, err := region.Rect(bounds)
	if err != nil {
		return nil, err
	}
	if feather < 0 {
		return nil, fmt.Errorf("feather must not be negative, got %d", feather)
	}

	mask := image.NewGray(bounds)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			mask.SetGray(x, y, color.Gray{Y: featherStrength(rect, x, y, feather)})
		}
	}
	return mask, nil
}

func featherStrength(rect image.Rectangle, x, y, feather int) uint8 {
	if feather == 0 {
		return 255
	}
	d := min(x-rect.Min.X, rect.Max.X-1-x, y-rect.Min.Y, rect.Max.Y-1-y) + 1
	if d > feather {
		return 255
	}
	return uint8(255 * d / (feather + 1))
}

// nrgbaAt reads the pixel at (x, y) as non-premultiplied 8-bit colour.
func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
