package pixelsort

import "sort"

// sortedPixel pairs a pixel with its key and the offset it came from.
type sortedPixel struct {
	px     Pixel
	value  float64
	offset int
}

// Sorter sorts lines span by span. It keeps the run's parameters and RNG and
// reuses its scratch buffers between lines.
type Sorter struct {
	params   Parameters
	rng      *RNG
	detector Detector
	work     []sortedPixel
	sorted   []sortedPixel

	// observe, when set, sees every line's spans before they are sorted.
	observe func(index, length int, spans []Span)
}

// NewSorter returns a sorter for one run. params should already be clamped.
func NewSorter(params Parameters, rng *RNG) *Sorter {
	return &Sorter{params: params, rng: rng}
}

// SortLine detects the spans of line and sorts each of them in place.
//
// index is the row or column number of the line. strip, when non-nil, holds
// the selection strengths aligned with line: strength-0 pixels are neither
// read nor written, strength-255 pixels receive the sorted colour, and partial
// strengths blend the sorted colour over the original (see Blend).
//
// For every span, in detection order:
//
//  1. If Falloff > 0, one draw in [0,99]; below Falloff skips the span.
//  2. Spans shorter than 2 pixels are skipped.
//  3. Selected pixels are gathered; fewer than 2 skips the span.
//  4. Pixels are sorted ascending by SortValue, then reversed if requested.
//  5. With Jitter > 0 each position i, left to right, is swapped with
//     clamp(i + draw in [-Jitter, Jitter]).
//  6. Pixels are written back to the offsets they were gathered from.
func (s *Sorter) SortLine(line Line, strip *Strip, index int) {
	if line.Len() <= 0 {
		return
	}
	spans := s.detector.Detect(line, s.params, index, s.rng)
	if s.observe != nil {
		s.observe(index, line.Len(), spans)
	}
	for _, span := range spans {
		s.sortSpan(line, strip, span)
	}
}

func (s *Sorter) sortSpan(line Line, strip *Strip, span Span) {
	p := s.params

	if p.Falloff > 0 && s.rng.IntRange(0, 99) < p.Falloff {
		return
	}
	if span.Len() < 2 {
		return
	}

	work := s.work[:0]
	for i := span.Start; i < span.End && i < line.Len(); i++ {
		if strip != nil && strip.At(i) == 0 {
			continue
		}
		px := line.At(i)
		work = append(work, sortedPixel{px: px, value: SortValue(px, p.SortKey), offset: i})
	}
	s.work = work

	count := len(work)
	if count < 2 {
		return
	}

	// Offsets stay in gather order; only the pixels move.
	pixels := append(s.sorted[:0], work...)
	s.sorted = pixels
	sort.Slice(pixels, func(i, j int) bool {
		return pixels[i].value < pixels[j].value
	})

	if p.Reverse {
		for i, j := 0, count-1; i < j; i, j = i+1, j-1 {
			pixels[i], pixels[j] = pixels[j], pixels[i]
		}
	}

	if p.Jitter > 0 {
		for i := 0; i < count; i++ {
			j := clamp(i+s.rng.IntRange(-p.Jitter, p.Jitter), 0, count-1)
			pixels[i], pixels[j] = pixels[j], pixels[i]
		}
	}

	for i, w := range work {
		sorted := pixels[i].px
		if strip != nil {
			if strength := strip.At(w.offset); strength < 255 {
				sorted = Blend(w.px, sorted, strength)
			}
		}
		line.Set(w.offset, sorted)
	}
}
