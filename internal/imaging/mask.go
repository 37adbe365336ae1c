package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadMask loads a selection mask image for a source image with the given
// bounds.
//
// The mask's luminance is the selection strength: white selects fully, black
// leaves a pixel untouched, grays blend. The mask must have exactly the size
// of the source image; it is aligned to bounds by its top-left corner.
//
// Parameters:
//   - cache: The image cache to load through. Must not be nil.
//   - path: Path to the mask image.
//   - bounds: Bounds of the source image.
//   - invert: Select where the mask is dark instead of light.
//
// Returns:
//   - image.Image: The mask, with bounds equal to bounds.
//   - error: Non-nil if the mask cannot be loaded or its size differs.
func LoadMask(cache *ImageCache, path string, bounds image.Rectangle, invert bool) (image.Image, error) {
	m, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mask: %w", err)
	}

	mb := m.Bounds()
	if mb.Dx() != bounds.Dx() || mb.Dy() != bounds.Dy() {
		return nil, fmt.Errorf("mask is %dx%d but image is %dx%d",
			mb.Dx(), mb.Dy(), bounds.Dx(), bounds.Dy())
	}

	gray := imaging.Grayscale(m)
	if invert {
		gray = imaging.Invert(gray)
	}

	mask := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			mask.Pix[y*mask.Stride+x] = gray.Pix[y*gray.Stride+x*4]
		}
	}
	return mask, nil
}
