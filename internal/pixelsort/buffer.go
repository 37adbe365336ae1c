package pixelsort

// Line is a one-dimensional view over a raster: a row when sorting
// horizontally, a column when sorting vertically. It owns no pixels.
type Line interface {
	Len() int
	At(i int) Pixel
	Set(i int, p Pixel)
}

// Buffer is a packed RGB raster, three bytes per pixel, rows top to bottom.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

// NewBuffer allocates a zeroed (black) buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Empty reports whether the buffer has zero area.
func (b *Buffer) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) Pixel {
	i := (y*b.Width + x) * 3
	return Pixel{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// Set replaces the pixel at (x, y).
func (b *Buffer) Set(x, y int, p Pixel) {
	i := (y*b.Width + x) * 3
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = p.R, p.G, p.B
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p Pixel) {
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2] = p.R, p.G, p.B
	}
}

// Row returns a line view over row y.
func (b *Buffer) Row(y int) Line {
	return &rowLine{pix: b.Pix[y*b.Width*3 : (y+1)*b.Width*3]}
}

// Column returns a line view over column x.
func (b *Buffer) Column(x int) Line {
	return &columnLine{pix: b.Pix, base: x * 3, stride: b.Width * 3, n: b.Height}
}

type rowLine struct {
	pix []uint8
}

func (l *rowLine) Len() int { return len(l.pix) / 3 }

func (l *rowLine) At(i int) Pixel {
	return Pixel{R: l.pix[i*3], G: l.pix[i*3+1], B: l.pix[i*3+2]}
}

func (l *rowLine) Set(i int, p Pixel) {
	l.pix[i*3], l.pix[i*3+1], l.pix[i*3+2] = p.R, p.G, p.B
}

type columnLine struct {
	pix    []uint8
	base   int
	stride int
	n      int
}

func (l *columnLine) Len() int { return l.n }

func (l *columnLine) At(i int) Pixel {
	o := l.base + i*l.stride
	return Pixel{R: l.pix[o], G: l.pix[o+1], B: l.pix[o+2]}
}

func (l *columnLine) Set(i int, p Pixel) {
	o := l.base + i*l.stride
	l.pix[o], l.pix[o+1], l.pix[o+2] = p.R, p.G, p.B
}

// Selection holds per-pixel selection strengths aligned with a Buffer:
// 0 is unselected, 255 fully selected, anything between partially selected.
type Selection struct {
	Width, Height int
	Pix           []uint8
}

// NewSelection allocates an all-unselected mask of the given size.
func NewSelection(width, height int) *Selection {
	return &Selection{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// At returns the strength at (x, y).
func (s *Selection) At(x, y int) uint8 {
	return s.Pix[y*s.Width+x]
}

// Row returns the strip of strengths along row y. A nil Selection yields a
// nil strip, which means "no selection".
func (s *Selection) Row(y int) *Strip {
	if s == nil {
		return nil
	}
	return &Strip{pix: s.Pix, base: y * s.Width, stride: 1, n: s.Width}
}

// Column returns the strip of strengths along column x.
func (s *Selection) Column(x int) *Strip {
	if s == nil {
		return nil
	}
	return &Strip{pix: s.Pix, base: x, stride: s.Width, n: s.Height}
}

// Strip is a selection view aligned index-for-index with a Line.
type Strip struct {
	pix    []uint8
	base   int
	stride int
	n      int
}

// NewStrip wraps a contiguous slice of strengths.
func NewStrip(strengths []uint8) *Strip {
	return &Strip{pix: strengths, stride: 1, n: len(strengths)}
}

func (s *Strip) Len() int { return s.n }

func (s *Strip) At(i int) uint8 {
	return s.pix[s.base+i*s.stride]
}

// Blend interpolates each channel from orig toward sorted by strength/255,
// truncating toward zero: orig + (sorted-orig)*strength/255.
// Strength 0 yields orig and 255 yields sorted exactly.
func Blend(orig, sorted Pixel, strength uint8) Pixel {
	return Pixel{
		R: blendChannel(orig.R, sorted.R, strength),
		G: blendChannel(orig.G, sorted.G, strength),
		B: blendChannel(orig.B, sorted.B, strength),
	}
}

func blendChannel(orig, sorted, strength uint8) uint8 {
	o := int(orig)
	return uint8(o + (int(sorted)-o)*int(strength)/255)
}
