package pixelsort

import "math"

// rotation maps between a source raster and the bounding box of that raster
// rotated by a whole number of degrees about its centre.
type rotation struct {
	srcW, srcH int
	rotW, rotH int
	cos, sin   float64
	cx, cy     float64 // source centre
	rcx, rcy   float64 // rotated centre
}

func newRotation(width, height, angle int) rotation {
	rad := float64(angle) * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	w, h := float64(width), float64(height)

	rotW := max(1, int(math.Ceil(math.Abs(w*cos)+math.Abs(h*sin))))
	rotH := max(1, int(math.Ceil(math.Abs(w*sin)+math.Abs(h*cos))))

	return rotation{
		srcW: width, srcH: height,
		rotW: rotW, rotH: rotH,
		cos: cos, sin: sin,
		cx: float64(width-1) / 2, cy: float64(height-1) / 2,
		rcx: float64(rotW-1) / 2, rcy: float64(rotH-1) / 2,
	}
}

// Rotate resamples src into a new buffer holding src rotated by angle degrees.
// Each destination pixel is inverse-mapped to the nearest source pixel;
// points landing outside the source stay black.
func Rotate(src *Buffer, angle int) *Buffer {
	return newRotation(src.Width, src.Height, angle).rotate(src)
}

// Unrotate resamples rot, produced by Rotate(src, angle) for a src of dst's
// size, back into dst. Pixels with no counterpart in rot become black.
func Unrotate(rot *Buffer, dst *Buffer, angle int) {
	newRotation(dst.Width, dst.Height, angle).unrotate(rot, dst)
}

func (r rotation) rotate(src *Buffer) *Buffer {
	dst := NewBuffer(r.rotW, r.rotH)
	for ry := 0; ry < r.rotH; ry++ {
		for rx := 0; rx < r.rotW; rx++ {
			dx, dy := float64(rx)-r.rcx, float64(ry)-r.rcy
			sx := int(dx*r.cos - dy*r.sin + r.cx + 0.5)
			sy := int(dx*r.sin + dy*r.cos + r.cy + 0.5)
			if sx >= 0 && sx < r.srcW && sy >= 0 && sy < r.srcH {
				dst.Set(rx, ry, src.At(sx, sy))
			}
		}
	}
	return dst
}

func (r rotation) unrotate(rot *Buffer, dst *Buffer) {
	dst.Fill(Pixel{})
	for fy := 0; fy < r.srcH; fy++ {
		for fx := 0; fx < r.srcW; fx++ {
			dx, dy := float64(fx)-r.cx, float64(fy)-r.cy
			rx := int(dx*r.cos + dy*r.sin + r.rcx + 0.5)
			ry := int(-dx*r.sin + dy*r.cos + r.rcy + 0.5)
			if rx >= 0 && rx < r.rotW && ry >= 0 && ry < r.rotH {
				dst.Set(fx, fy, rot.At(rx, ry))
			}
		}
	}
}

// RotatedSize returns the bounding box of a width x height raster rotated by
// angle degrees, which is the frame an angled run sorts in.
func RotatedSize(width, height, angle int) (int, int) {
	r := newRotation(width, height, angle)
	return r.rotW, r.rotH
}
