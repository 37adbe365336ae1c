package pixelsort

import (
	"reflect"
	"testing"
)

// lineOf builds a single-row buffer holding pixels and returns its row view.
func lineOf(pixels ...Pixel) Line {
	buf := NewBuffer(len(pixels), 1)
	for i, p := range pixels {
		buf.Set(i, 0, p)
	}
	return buf.Row(0)
}

func gray(v uint8) Pixel { return Pixel{R: v, G: v, B: v} }

func grayLine(values ...uint8) Line {
	pixels := make([]Pixel, len(values))
	for i, v := range values {
		pixels[i] = gray(v)
	}
	return lineOf(pixels...)
}

func TestThresholdSpans(t *testing.T) {
	tests := []struct {
		name   string
		values []uint8
		want   []Span
	}{
		{"alternating", []uint8{10, 200, 10, 200}, []Span{{1, 2}, {3, 4}}},
		{"trailing run closed", []uint8{10, 200, 200}, []Span{{1, 3}}},
		{"whole line", []uint8{150, 180, 200}, []Span{{0, 3}}},
		{"nothing in range", []uint8{0, 10, 255}, nil},
		{"leading run", []uint8{200, 200, 10, 10, 150}, []Span{{0, 2}, {4, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThresholdSpans(nil, grayLine(tt.values...), Brightness, 0.5, 0.9)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThresholdSpans_InclusiveBounds(t *testing.T) {
	line := lineOf(Pixel{R: 0}, Pixel{R: 51}, Pixel{R: 102}, Pixel{R: 153})
	got := ThresholdSpans(nil, line, Red, 51.0/255, 102.0/255)
	want := []Span{{1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRandomSpans(t *testing.T) {
	const n = 200
	spans := RandomSpans(nil, n, NewRNG(DefaultSeed))

	if len(spans) == 0 {
		t.Fatal("no spans produced")
	}
	if spans[0].Start != 0 {
		t.Errorf("first span starts at %d, want 0", spans[0].Start)
	}
	maxLen := n / 4
	for i, s := range spans {
		if s.End > n {
			t.Errorf("span %d ends past line: %v", i, s)
		}
		if s.Len() < 1 {
			t.Errorf("span %d is empty: %v", i, s)
		}
		if s.End < n && (s.Len() < 10 || s.Len() > maxLen) {
			t.Errorf("span %d length %d outside [10,%d]", i, s.Len(), maxLen)
		}
		if i > 0 {
			gap := s.Start - spans[i-1].End
			if gap < 1 || gap > 20 {
				t.Errorf("gap before span %d is %d, want [1,20]", i, gap)
			}
		}
	}

	again := RandomSpans(nil, n, NewRNG(DefaultSeed))
	if !reflect.DeepEqual(spans, again) {
		t.Error("same seed produced different spans")
	}
}

func TestRandomSpans_ShortLine(t *testing.T) {
	spans := RandomSpans(nil, 5, NewRNG(1))
	want := []Span{{0, 5}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("got %v, want %v", spans, want)
	}
}

func TestEdgeSpans(t *testing.T) {
	tests := []struct {
		name   string
		values []uint8
		want   []Span
	}{
		{"single pixel", []uint8{77}, []Span{{0, 1}}},
		{"uniform line", []uint8{40, 40, 40, 40, 40}, []Span{{0, 5}}},
		{"one hard edge", []uint8{0, 0, 0, 255, 255, 255}, []Span{{0, 3}, {3, 6}}},
		{"two hard edges", []uint8{0, 0, 0, 0, 255, 255, 255, 255, 0, 0, 0, 0}, []Span{{0, 4}, {4, 8}, {8, 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := EdgeSpans(nil, grayLine(tt.values...), nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaveSpans(t *testing.T) {
	got := WaveSpans(nil, 20, 0)
	want := []Span{{0, 5}, {5, 12}, {12, 20}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	first := WaveSpans(nil, 100, 0)
	if first[0].Len() != 6 || first[1].Len() != 9 || first[2].Len() != 11 {
		t.Errorf("unexpected wave lengths: %v", first[:3])
	}
	assertCovers(t, first, 100)

	second := WaveSpans(nil, 100, 1)
	if reflect.DeepEqual(first, second) {
		t.Error("adjacent lines should get different wave spans")
	}
	assertCovers(t, second, 100)
}

func assertCovers(t *testing.T, spans []Span, n int) {
	t.Helper()
	pos := 0
	for _, s := range spans {
		if s.Start != pos {
			t.Fatalf("span %v does not continue from %d", s, pos)
		}
		pos = s.End
	}
	if pos != n {
		t.Fatalf("spans end at %d, want %d", pos, n)
	}
}

func TestFullSpan(t *testing.T) {
	if got := FullSpan(nil, 9); !reflect.DeepEqual(got, []Span{{0, 9}}) {
		t.Errorf("got %v", got)
	}
	if got := FullSpan(nil, 0); len(got) != 0 {
		t.Errorf("empty line should yield no spans, got %v", got)
	}
}

func TestFilterMinLength(t *testing.T) {
	spans := []Span{{0, 3}, {3, 10}, {12, 14}, {20, 25}}
	got := FilterMinLength(spans, 5)
	want := []Span{{3, 10}, {20, 25}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if again := FilterMinLength(got, 5); !reflect.DeepEqual(again, want) {
		t.Errorf("filter not idempotent: %v", again)
	}
}

func TestCapMaxLength(t *testing.T) {
	spans := []Span{{0, 12}, {15, 18}}
	got := CapMaxLength(nil, spans, 5)
	want := []Span{{0, 5}, {5, 10}, {10, 12}, {15, 18}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, s := range got {
		if s.Len() > 5 {
			t.Errorf("span %v longer than 5", s)
		}
	}
	if again := CapMaxLength(nil, got, 5); !reflect.DeepEqual(again, got) {
		t.Errorf("cap not idempotent: %v", again)
	}
	if unlimited := CapMaxLength(nil, spans, 0); !reflect.DeepEqual(unlimited, spans) {
		t.Errorf("max 0 should leave spans unchanged, got %v", unlimited)
	}
}

func TestDetector_Detect(t *testing.T) {
	var d Detector
	line := grayLine(make([]uint8, 23)...)

	p := DefaultParameters()
	p.IntervalMode = None
	p.SpanMax = 10
	got := d.Detect(line, p, 0, NewRNG(DefaultSeed))
	want := []Span{{0, 10}, {10, 20}, {20, 23}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("none+max: got %v, want %v", got, want)
	}

	p.SpanMax = 0
	p.SpanMin = 30
	if got := d.Detect(line, p, 0, NewRNG(DefaultSeed)); len(got) != 0 {
		t.Errorf("span min longer than line should drop everything, got %v", got)
	}
}

func TestDetector_MinFilterBeforeSplit(t *testing.T) {
	var d Detector
	// In-range runs of length 3 and 8.
	line := grayLine(200, 200, 200, 0, 200, 200, 200, 200, 200, 200, 200, 200)
	p := DefaultParameters()
	p.LowerThreshold, p.UpperThreshold = 128, 230
	p.SpanMin = 4
	p.SpanMax = 4

	got := d.Detect(line, p, 0, nil)
	want := []Span{{4, 8}, {8, 12}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
