package imaging

import (
	"image"
	"strings"
	"testing"
)

func TestRegion_Rect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)

	tests := []struct {
		name    string
		region  Region
		wantErr string
	}{
		{"whole image", Region{0, 0, 100, 50}, ""},
		{"inner", Region{10, 10, 20, 30}, ""},
		{"past right edge", Region{90, 0, 101, 10}, "outside image bounds"},
		{"negative origin", Region{-1, 0, 10, 10}, "outside image bounds"},
		{"empty width", Region{10, 10, 10, 20}, "x1 must be < x2"},
		{"inverted height", Region{0, 30, 10, 20}, "y1 must be < y2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.region.Rect(bounds)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != image.Rect(tt.region.X1, tt.region.Y1, tt.region.X2, tt.region.Y2) {
				t.Errorf("got %v", r)
			}
		})
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name string
		want Region
	}{
		{"top-left", Region{0, 0, 50, 40}},
		{"top-right", Region{50, 0, 100, 40}},
		{"bottom-left", Region{0, 40, 50, 80}},
		{"bottom-right", Region{50, 40, 100, 80}},
		{"top-half", Region{0, 0, 100, 40}},
		{"bottom-half", Region{0, 40, 100, 80}},
		{"left-half", Region{0, 0, 50, 80}},
		{"right-half", Region{50, 0, 100, 80}},
		{"center", Region{25, 20, 75, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := NamedRegion(bounds, "middle-ish"); err == nil {
		t.Error("expected error for unknown region name")
	}

	offset, err := NamedRegion(image.Rect(10, 20, 30, 40), "bottom-right")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	if offset != (Region{20, 30, 30, 40}) {
		t.Errorf("offset bounds: got %+v", offset)
	}
}

func TestRegionMask(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 8)

	mask, err := RegionMask(bounds, Region{2, 2, 6, 5}, 0)
	if err != nil {
		t.Fatalf("RegionMask failed: %v", err)
	}
	if mask.Bounds() != bounds {
		t.Errorf("mask bounds: got %v, want %v", mask.Bounds(), bounds)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if x >= 2 && x < 6 && y >= 2 && y < 5 {
				want = 255
			}
			if got := mask.GrayAt(x, y).Y; got != want {
				t.Fatalf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestRegionMask_Feather(t *testing.T) {
	bounds := image.Rect(0, 0, 9, 9)

	mask, err := RegionMask(bounds, Region{0, 0, 9, 9}, 2)
	if err != nil {
		t.Fatalf("RegionMask failed: %v", err)
	}

	// Along the middle row: edge pixel 85, next 170, then fully selected.
	want := []uint8{85, 170, 255, 255, 255, 255, 255, 170, 85}
	for x, w := range want {
		if got := mask.GrayAt(x, 4).Y; got != w {
			t.Errorf("x=%d: got %d, want %d", x, got, w)
		}
	}
	if got := mask.GrayAt(0, 0).Y; got != 85 {
		t.Errorf("corner: got %d, want 85", got)
	}

	if _, err := RegionMask(bounds, Region{0, 0, 9, 9}, -1); err == nil {
		t.Error("expected error for negative feather")
	}
	if _, err := RegionMask(bounds, Region{0, 0, 20, 9}, 0); err == nil {
		t.Error("expected error for region outside bounds")
	}
}
