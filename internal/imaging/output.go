package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// JPEGQuality is the quality SaveImage uses for .jpg and .jpeg files.
const JPEGQuality = 95

// EncodedImage contains an image returned inline to the client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG, optionally rescaled.
//
// Parameters:
//   - img: The image to encode.
//   - scale: Resize factor. Values <= 0 or exactly 1 leave the size unchanged;
//     anything else resizes with Lanczos resampling, which is useful for
//     returning a preview of a large sort result.
//
// Returns:
//   - *EncodedImage: The encoded image and its final size.
//   - error: Non-nil if encoding fails.
func EncodePNG(img image.Image, scale float64) (*EncodedImage, error) {
	out := img
	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(img.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(img.Bounds().Dy())*scale))
		out = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveImage writes img to path in the format implied by its extension.
//
// Supported output formats are PNG, JPEG (at JPEGQuality) and BMP. Only PNG
// keeps the alpha channel.
func SaveImage(path string, img image.Image) error {
	var enc imgio.Encoder
	switch format := FormatFromPath(path); format {
	case "png":
		enc = imgio.PNGEncoder()
	case "jpeg":
		enc = imgio.JPEGEncoder(JPEGQuality)
	case "bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q for %s (use .png, .jpg or .bmp)", format, path)
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
