package pixelsort

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// Engine drives whole-image sort runs. The zero value is not usable; create
// one with NewEngine.
type Engine struct {
	logger *log.Logger
}

// NewEngine returns an engine that reports per-run details to logger at debug
// level. A nil logger discards them.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{logger: logger}
}

// Transform sorts buf in place.
//
// sel may be nil (everything is processed and written unconditionally);
// otherwise it must match buf's size. Parameters are clamped on entry and the
// RNG is seeded with DefaultSeed, so repeated calls with equal inputs produce
// identical results. A zero-area buffer is left untouched.
//
// For angled horizontal runs the buffer is rotated into its bounding box,
// sorted without selection, unrotated, and then blended against the
// pre-sort original by selection strength in source-pixel space.
func (e *Engine) Transform(buf *Buffer, sel *Selection, params Parameters) {
	e.transform(buf, sel, params, nil)
}

func (e *Engine) transform(buf *Buffer, sel *Selection, params Parameters, observe func(index, length int, spans []Span)) {
	p := params.Clamp()
	rng := NewRNG(DefaultSeed)

	e.logger.Debug("pixel sort run", "params", p.String())
	if buf.Empty() {
		return
	}
	e.logger.Debug("full image", "width", buf.Width, "height", buf.Height, "angle", p.Angle)

	sorter := NewSorter(p, rng)
	sorter.observe = observe

	if !p.Angled() {
		if p.Direction == Horizontal {
			for y := 0; y < buf.Height; y++ {
				sorter.SortLine(buf.Row(y), sel.Row(y), y)
			}
		} else {
			for x := 0; x < buf.Width; x++ {
				sorter.SortLine(buf.Column(x), sel.Column(x), x)
			}
		}
		return
	}

	var orig *Buffer
	if sel != nil {
		orig = buf.Clone()
	}

	r := newRotation(buf.Width, buf.Height, p.Angle)
	rot := r.rotate(buf)
	e.logger.Debug("rotated", "width", rot.Width, "height", rot.Height)
	for y := 0; y < rot.Height; y++ {
		sorter.SortLine(rot.Row(y), nil, y)
	}
	r.unrotate(rot, buf)

	if sel != nil {
		blendSelection(buf, orig, sel)
	}
}

// blendSelection reverts unselected pixels of buf to orig and interpolates
// partially selected ones.
func blendSelection(buf, orig *Buffer, sel *Selection) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			switch strength := sel.At(x, y); strength {
			case 255:
			case 0:
				buf.Set(x, y, orig.At(x, y))
			default:
				buf.Set(x, y, Blend(orig.At(x, y), buf.At(x, y), strength))
			}
		}
	}
}

// Run sorts src and returns the result as a new image with src's bounds.
//
// mask, when non-nil, supplies selection strengths (see SelectionFromImage)
// and must cover src's bounds. Alpha is carried over from src unchanged. src
// itself is never modified.
func (e *Engine) Run(src image.Image, mask image.Image, params Parameters) *image.NRGBA {
	out := imaging.Clone(src)
	bounds := src.Bounds()
	out.Rect = bounds

	buf := bufferFromNRGBA(out)
	var sel *Selection
	if mask != nil {
		sel = SelectionFromImage(mask, bounds)
	}

	e.Transform(buf, sel, params)

	writeNRGBA(out, buf)
	return out
}

// LineReport describes the spans one line of a run was partitioned into.
type LineReport struct {
	// Index is the row or column number. For angled runs it is a row of the
	// rotated frame (see RotatedSize).
	Index int `json:"index"`

	// Length is the number of pixels in the line.
	Length int `json:"length"`

	// Spans are the spans in detection order, after the SpanMin and SpanMax
	// filters.
	Spans []Span `json:"spans"`

	// Covered is the total number of pixels inside spans.
	Covered int `json:"covered"`
}

// InspectLine performs the run Run would perform and reports the spans of line
// index. The RNG advances through every earlier line exactly as in a real
// run, so random spans match the output image. ok is false when index is not
// a line of the run's frame.
func (e *Engine) InspectLine(src image.Image, mask image.Image, params Parameters, index int) (report LineReport, ok bool) {
	bounds := src.Bounds()
	buf := bufferFromNRGBA(imaging.Clone(src))
	var sel *Selection
	if mask != nil {
		sel = SelectionFromImage(mask, bounds)
	}

	e.transform(buf, sel, params, func(i, length int, spans []Span) {
		if i != index {
			return
		}
		ok = true
		report = LineReport{Index: i, Length: length, Spans: append([]Span{}, spans...)}
		for _, s := range spans {
			report.Covered += s.Len()
		}
	})
	return report, ok
}

// RunBlocks sorts dst in place, reading and writing it block by block.
//
// The full frame is gathered from blocks of at most blockSize pixels square,
// transformed as a whole, and written back block by block. Only the RGB
// channels of dst are replaced.
func (e *Engine) RunBlocks(dst draw.Image, mask image.Image, params Parameters, blockSize int) {
	bounds := dst.Bounds()
	blocks := Blocks(bounds, blockSize)

	buf := NewBuffer(bounds.Dx(), bounds.Dy())
	for _, b := range blocks {
		readBlock(buf, dst, b)
	}
	var sel *Selection
	if mask != nil {
		sel = SelectionFromImage(mask, bounds)
	}

	e.Transform(buf, sel, params)

	for _, b := range blocks {
		writeBlock(dst, buf, b)
	}
	e.logger.Debug("wrote blocks", "count", len(blocks))
}

// Blocks partitions bounds into row-major blocks of at most size x size
// pixels. A size below 1 yields a single block covering bounds.
func Blocks(bounds image.Rectangle, size int) []image.Rectangle {
	if bounds.Empty() {
		return nil
	}
	if size < 1 {
		return []image.Rectangle{bounds}
	}
	var blocks []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y += size {
		for x := bounds.Min.X; x < bounds.Max.X; x += size {
			blocks = append(blocks, image.Rect(x, y, x+size, y+size).Intersect(bounds))
		}
	}
	return blocks
}

// SelectionFromImage reads selection strengths for bounds from mask.
//
// *image.Gray and *image.Alpha masks are read directly; any other image is
// converted to luminance first. Pixels of bounds outside the mask are
// unselected.
func SelectionFromImage(mask image.Image, bounds image.Rectangle) *Selection {
	sel := NewSelection(bounds.Dx(), bounds.Dy())
	mb := mask.Bounds()

	var strength func(x, y int) uint8
	switch m := mask.(type) {
	case *image.Gray:
		strength = func(x, y int) uint8 { return m.GrayAt(x, y).Y }
	case *image.Alpha:
		strength = func(x, y int) uint8 { return m.AlphaAt(x, y).A }
	default:
		gray := imaging.Grayscale(mask)
		strength = func(x, y int) uint8 {
			return gray.NRGBAAt(x-mb.Min.X, y-mb.Min.Y).R
		}
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !(image.Point{X: x, Y: y}).In(mb) {
				continue
			}
			sel.Pix[(y-bounds.Min.Y)*sel.Width+(x-bounds.Min.X)] = strength(x, y)
		}
	}
	return sel
}

func bufferFromNRGBA(img *image.NRGBA) *Buffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			buf.Set(x, y, Pixel{R: row[x*4], G: row[x*4+1], B: row[x*4+2]})
		}
	}
	return buf
}

func writeNRGBA(img *image.NRGBA, buf *Buffer) {
	for y := 0; y < buf.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < buf.Width; x++ {
			p := buf.At(x, y)
			row[x*4], row[x*4+1], row[x*4+2] = p.R, p.G, p.B
		}
	}
}

func readBlock(buf *Buffer, src image.Image, block image.Rectangle) {
	origin := src.Bounds().Min
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			buf.Set(x-origin.X, y-origin.Y, Pixel{R: c.R, G: c.G, B: c.B})
		}
	}
}

func writeBlock(dst draw.Image, buf *Buffer, block image.Rectangle) {
	origin := dst.Bounds().Min
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			a := color.NRGBAModel.Convert(dst.At(x, y)).(color.NRGBA).A
			p := buf.At(x-origin.X, y-origin.Y)
			dst.Set(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: a})
		}
	}
}
