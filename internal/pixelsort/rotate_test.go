package pixelsort

import (
	"math/rand"
	"testing"
)

func randomBuffer(seed int64, w, h int) *Buffer {
	r := rand.New(rand.NewSource(seed))
	buf := NewBuffer(w, h)
	r.Read(buf.Pix)
	return buf
}

func TestRotate_ZeroAngleIsIdentity(t *testing.T) {
	src := randomBuffer(1, 13, 7)
	rot := Rotate(src, 0)

	if rot.Width != src.Width || rot.Height != src.Height {
		t.Fatalf("size: got %dx%d, want %dx%d", rot.Width, rot.Height, src.Width, src.Height)
	}
	for i := range src.Pix {
		if rot.Pix[i] != src.Pix[i] {
			t.Fatalf("byte %d differs after zero rotation", i)
		}
	}

	back := NewBuffer(src.Width, src.Height)
	Unrotate(rot, back, 0)
	for i := range src.Pix {
		if back.Pix[i] != src.Pix[i] {
			t.Fatalf("byte %d differs after zero unrotation", i)
		}
	}
}

func TestRotate_BoundingBox(t *testing.T) {
	tests := []struct {
		w, h, angle  int
		wantW, wantH int
	}{
		{20, 10, 0, 20, 10},
		{10, 10, 45, 15, 15},
		{1, 1, 30, 2, 2},
	}
	for _, tt := range tests {
		r := newRotation(tt.w, tt.h, tt.angle)
		if r.rotW != tt.wantW || r.rotH != tt.wantH {
			t.Errorf("%dx%d at %d°: got %dx%d, want %dx%d",
				tt.w, tt.h, tt.angle, r.rotW, r.rotH, tt.wantW, tt.wantH)
		}
	}
}

func TestRotate_UniformRoundTrip(t *testing.T) {
	color := Pixel{R: 37, G: 180, B: 90}
	for _, angle := range []int{15, 30, 45, 90, 137, 200, 359} {
		src := NewBuffer(24, 16)
		src.Fill(color)

		rot := Rotate(src, angle)
		back := NewBuffer(src.Width, src.Height)
		Unrotate(rot, back, angle)

		const border = 2
		for y := border; y < src.Height-border; y++ {
			for x := border; x < src.Width-border; x++ {
				if got := back.At(x, y); got != color {
					t.Fatalf("angle %d: pixel (%d,%d) = %v, want %v", angle, x, y, got, color)
				}
			}
		}
	}
}

func TestRotate_OutsideIsBlack(t *testing.T) {
	src := NewBuffer(10, 10)
	src.Fill(Pixel{R: 255, G: 255, B: 255})

	rot := Rotate(src, 45)
	if got := rot.At(0, 0); got != (Pixel{}) {
		t.Errorf("corner of rotated buffer should be background, got %v", got)
	}
	cx, cy := rot.Width/2, rot.Height/2
	if got := rot.At(cx, cy); got != (Pixel{R: 255, G: 255, B: 255}) {
		t.Errorf("centre of rotated buffer should be source colour, got %v", got)
	}
}
