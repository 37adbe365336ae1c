package pixelsort

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction selects whether rows or columns are sorted.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

var directionNames = []string{"horizontal", "vertical"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection returns the direction named s (case-insensitive).
// Unknown names yield Horizontal.
func ParseDirection(s string) Direction {
	return Direction(lookup(directionNames, s))
}

// SortKey selects the colour metric pixels are ordered by.
type SortKey int

const (
	Brightness SortKey = iota
	Hue
	Saturation
	Intensity
	Minimum
	Red
	Green
	Blue
)

var sortKeyNames = []string{
	"brightness", "hue", "saturation", "intensity",
	"minimum", "red", "green", "blue",
}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortKeyNames[k]
}

// ParseSortKey returns the sort key named s (case-insensitive).
// Unknown names yield Brightness.
func ParseSortKey(s string) SortKey {
	return SortKey(lookup(sortKeyNames, s))
}

// SortKeys lists every sort key in enumeration order.
func SortKeys() []SortKey {
	keys := make([]SortKey, len(sortKeyNames))
	for i := range keys {
		keys[i] = SortKey(i)
	}
	return keys
}

// IntervalMode selects the strategy that partitions a line into spans.
type IntervalMode int

const (
	Threshold IntervalMode = iota
	Random
	Edges
	Waves
	None
)

var intervalModeNames = []string{"threshold", "random", "edges", "waves", "none"}

func (m IntervalMode) String() string {
	if m < 0 || int(m) >= len(intervalModeNames) {
		return fmt.Sprintf("IntervalMode(%d)", int(m))
	}
	return intervalModeNames[m]
}

// ParseIntervalMode returns the interval mode named s (case-insensitive).
// Unknown names yield Threshold.
func ParseIntervalMode(s string) IntervalMode {
	return IntervalMode(lookup(intervalModeNames, s))
}

// MarshalText and UnmarshalText give the enums their external names in JSON
// and TOML. Unmarshalling never fails: a decimal index selects that variant
// and unknown names fall back to the first variant, matching Clamp.

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	*d = ParseDirection(string(b))
	return nil
}

func (k SortKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *SortKey) UnmarshalText(b []byte) error {
	*k = ParseSortKey(string(b))
	return nil
}

func (m IntervalMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *IntervalMode) UnmarshalText(b []byte) error {
	*m = ParseIntervalMode(string(b))
	return nil
}

// lookup returns the index of s in names. TOML hands integer values to
// UnmarshalText as decimal text, so an in-range index is accepted too.
func lookup(names []string, s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(names) {
		return i
	}
	return 0
}

// Parameters holds every tunable of a sort run.
//
// Values read from any external source must go through Clamp before use;
// Transform clamps again on entry so a caller cannot bypass it.
type Parameters struct {
	// Direction selects rows (Horizontal) or columns (Vertical).
	Direction Direction `json:"direction" toml:"direction"`

	// SortKey is the metric pixels are ordered by.
	SortKey SortKey `json:"sort_key" toml:"sort_key"`

	// IntervalMode is the span detection strategy.
	IntervalMode IntervalMode `json:"interval_mode" toml:"interval_mode"`

	// LowerThreshold and UpperThreshold bound the Threshold mode in 0-255 terms,
	// whatever the sort key's natural scale.
	LowerThreshold int `json:"lower_threshold" toml:"lower_threshold"`
	UpperThreshold int `json:"upper_threshold" toml:"upper_threshold"`

	// Reverse flips each span after sorting.
	Reverse bool `json:"reverse" toml:"reverse"`

	// Jitter is the maximum positional displacement applied after sorting (0-100).
	Jitter int `json:"jitter" toml:"jitter"`

	// SpanMin drops spans shorter than this (1-10000).
	SpanMin int `json:"span_min" toml:"span_min"`

	// SpanMax splits spans longer than this; 0 means unlimited.
	SpanMax int `json:"span_max" toml:"span_max"`

	// Angle rotates the sort axis in degrees; only used when Direction is Horizontal.
	Angle int `json:"angle" toml:"angle"`

	// Falloff is the percent chance an eligible span is left unsorted.
	Falloff int `json:"falloff" toml:"falloff"`
}

// DefaultParameters returns the parameter set a fresh filter starts with.
func DefaultParameters() Parameters {
	return Parameters{
		Direction:      Horizontal,
		SortKey:        Brightness,
		IntervalMode:   Threshold,
		LowerThreshold: 64,
		UpperThreshold: 204,
		SpanMin:        1,
	}
}

// Clamp returns p with every field forced into its valid range.
//
// Out-of-range enums fall back to their first variant; numeric fields are
// clamped; UpperThreshold is raised to LowerThreshold and a nonzero SpanMax to
// SpanMin; Angle is reduced modulo 360. Clamp never fails and is idempotent.
func (p Parameters) Clamp() Parameters {
	if p.Direction < Horizontal || p.Direction > Vertical {
		p.Direction = Horizontal
	}
	if p.SortKey < Brightness || p.SortKey > Blue {
		p.SortKey = Brightness
	}
	if p.IntervalMode < Threshold || p.IntervalMode > None {
		p.IntervalMode = Threshold
	}

	p.LowerThreshold = clamp(p.LowerThreshold, 0, 255)
	p.UpperThreshold = clamp(p.UpperThreshold, 0, 255)
	if p.UpperThreshold < p.LowerThreshold {
		p.UpperThreshold = p.LowerThreshold
	}

	p.Jitter = clamp(p.Jitter, 0, 100)
	p.SpanMin = clamp(p.SpanMin, 1, 10000)
	p.SpanMax = clamp(p.SpanMax, 0, 10000)
	if p.SpanMax > 0 && p.SpanMax < p.SpanMin {
		p.SpanMax = p.SpanMin
	}

	p.Angle = ((p.Angle % 360) + 360) % 360
	p.Falloff = clamp(p.Falloff, 0, 100)
	return p
}

// Angled reports whether the run sorts along a rotated axis.
func (p Parameters) Angled() bool {
	return p.Direction == Horizontal && p.Angle != 0
}

// String renders p in the one-line form used by debug logging.
func (p Parameters) String() string {
	return fmt.Sprintf("dir=%s key=%s mode=%s lo=%d hi=%d rev=%t jit=%d smin=%d smax=%d ang=%d fall=%d",
		p.Direction, p.SortKey, p.IntervalMode, p.LowerThreshold, p.UpperThreshold,
		p.Reverse, p.Jitter, p.SpanMin, p.SpanMax, p.Angle, p.Falloff)
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
