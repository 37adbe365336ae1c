package pixelsort

import "math"

// Span is a half-open interval [Start, End) of line-local indices selected for
// one independent sort.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of pixels in the span.
func (s Span) Len() int { return s.End - s.Start }

// ThresholdSpans appends the maximal runs of pixels whose normalized sort
// value lies in [lower, upper] inclusive. A run still open at the end of the
// line is closed there.
func ThresholdSpans(dst []Span, line Line, key SortKey, lower, upper float64) []Span {
	n := line.Len()
	start := -1
	for i := 0; i < n; i++ {
		v := NormalizedSortValue(line.At(i), key)
		inRange := v >= lower && v <= upper
		switch {
		case inRange && start < 0:
			start = i
		case !inRange && start >= 0:
			dst = append(dst, Span{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		dst = append(dst, Span{Start: start, End: n})
	}
	return dst
}

// RandomSpans appends spans of random length separated by random gaps.
//
// Starting at 0, each iteration draws a length in [10, max(11, n/4)], emits a
// span of that length clipped to n, then draws a gap in [1, 20] and skips it.
// Both draws come from rng, in that order.
func RandomSpans(dst []Span, n int, rng *RNG) []Span {
	maxLen := max(11, n/4)
	for i := 0; i < n; {
		length := rng.IntRange(10, maxLen)
		end := min(i+length, n)
		dst = append(dst, Span{Start: i, End: end})
		gap := rng.IntRange(1, 20)
		i = end + gap
	}
	return dst
}

// EdgeSpans appends the spans between brightness edges.
//
// The absolute differences of normalized brightness between neighbours are
// computed; any difference greater than their mean plus population standard
// deviation splits the line. work is scratch space and is returned resized
// for reuse.
func EdgeSpans(dst []Span, line Line, work []float64) ([]Span, []float64) {
	n := line.Len()
	if n <= 0 {
		return dst, work
	}
	if n == 1 {
		return append(dst, Span{Start: 0, End: 1}), work
	}

	if cap(work) < n {
		work = make([]float64, n)
	}
	work = work[:n]
	for i := 0; i < n; i++ {
		work[i] = NormalizedSortValue(line.At(i), Brightness)
	}

	// Differences overwrite the brightness in place: diff i only needs
	// brightness i and i+1, and brightness i is not read again afterwards.
	edges := n - 1
	var sum, sumSq float64
	for i := 0; i < edges; i++ {
		d := math.Abs(work[i+1] - work[i])
		work[i] = d
		sum += d
		sumSq += d * d
	}
	mean := sum / float64(edges)
	variance := sumSq/float64(edges) - mean*mean
	if variance < 0 {
		variance = 0
	}
	threshold := mean + math.Sqrt(variance)

	prev := 0
	for i := 0; i < edges; i++ {
		if work[i] > threshold {
			split := i + 1
			if split > prev {
				dst = append(dst, Span{Start: prev, End: split})
			}
			prev = split
		}
	}
	if n > prev {
		dst = append(dst, Span{Start: prev, End: n})
	}
	return dst, work
}

// WaveSpans appends spans whose lengths follow a sine wave. The phase starts
// at index*0.1, so neighbouring lines get different spans, and advances by 0.5
// per span. No randomness is consumed.
func WaveSpans(dst []Span, n, index int) []Span {
	waveLen := float64(max(10, n/8))
	phase := float64(index) * 0.1
	for i := 0; i < n; {
		length := max(2, int(math.Round(waveLen*(0.5+0.5*math.Sin(phase)))))
		end := min(i+length, n)
		dst = append(dst, Span{Start: i, End: end})
		i = end
		phase += 0.5
	}
	return dst
}

// FullSpan appends a single span covering the whole line.
func FullSpan(dst []Span, n int) []Span {
	if n <= 0 {
		return dst
	}
	return append(dst, Span{Start: 0, End: n})
}

// FilterMinLength removes spans shorter than minLen, keeping order. It
// filters in place.
func FilterMinLength(spans []Span, minLen int) []Span {
	if minLen <= 1 {
		return spans
	}
	out := spans[:0]
	for _, s := range spans {
		if s.Len() >= minLen {
			out = append(out, s)
		}
	}
	return out
}

// CapMaxLength appends to dst the spans split left to right into consecutive
// pieces no longer than maxLen. A maxLen of 0 copies spans unchanged.
func CapMaxLength(dst, spans []Span, maxLen int) []Span {
	for _, s := range spans {
		if maxLen <= 0 {
			dst = append(dst, s)
			continue
		}
		for start := s.Start; start < s.End; {
			end := min(start+maxLen, s.End)
			dst = append(dst, Span{Start: start, End: end})
			start = end
		}
	}
	return dst
}

// Detector turns lines into span lists. Its scratch buffers are reused from
// line to line, so the slice returned by Detect is only valid until the next
// call.
type Detector struct {
	spans      []Span
	capped     []Span
	brightness []float64
}

// Detect returns the spans of line under p, after the SpanMin filter and the
// SpanMax split. index is the row or column number, used by Waves; rng is
// consumed only by Random.
func (d *Detector) Detect(line Line, p Parameters, index int, rng *RNG) []Span {
	n := line.Len()
	spans := d.spans[:0]

	switch p.IntervalMode {
	case Threshold:
		lower := float64(p.LowerThreshold) / 255
		upper := float64(p.UpperThreshold) / 255
		spans = ThresholdSpans(spans, line, p.SortKey, lower, upper)
	case Random:
		spans = RandomSpans(spans, n, rng)
	case Edges:
		spans, d.brightness = EdgeSpans(spans, line, d.brightness)
	case Waves:
		spans = WaveSpans(spans, n, index)
	default:
		spans = FullSpan(spans, n)
	}

	spans = FilterMinLength(spans, p.SpanMin)
	d.spans = spans

	if p.SpanMax > 0 {
		d.capped = CapMaxLength(d.capped[:0], spans, p.SpanMax)
		return d.capped
	}
	return spans
}
