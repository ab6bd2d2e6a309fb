package ticks

import (
	"iter"
	"math"
	"time"
)

// Tick is one placed tick.
type Tick[T Value] struct {
	Value T
	// Position is the pixel offset along the span, measured from the start
	// of the generated range.
	Position float64
	Label    string
}

// Set is the result of a generation.
type Set[T Value] struct {
	Ticks []Tick[T]
	// Step describes the chosen spacing, e.g. "0.5" or "15 minutes".
	Step string
}

// Len returns the number of ticks.
func (s Set[T]) Len() int { return len(s.Ticks) }

// All iterates the ticks in order. The sequence can be ranged over any
// number of times.
func (s Set[T]) All() iter.Seq[Tick[T]] {
	return func(yield func(Tick[T]) bool) {
		for _, t := range s.Ticks {
			if !yield(t) {
				return
			}
		}
	}
}

// Labels returns the tick labels in order.
func (s Set[T]) Labels() []string {
	out := make([]string, len(s.Ticks))
	for i, t := range s.Ticks {
		out[i] = t.Label
	}
	return out
}

// Generator places ticks for a data range on a span.
type Generator[T Value] interface {
	Generate(first, last T, span Span) Set[T]
}

// Default returns the default generator for T: AlignedFloats for float64 and
// Timestamps for time.Time.
func Default[T Value]() Generator[T] {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(AlignedFloats{}).(Generator[T])
	case time.Time:
		return any(Timestamps{}).(Generator[T])
	}
	return nil
}

// fits reports whether neighbouring labels keep at least span.Gap apart.
func fits[T Value](ticks []Tick[T], span Span) bool {
	gap := span.Gap()
	if math.IsNaN(gap) || gap < 0 {
		gap = 0
	}
	for i := 0; i+1 < len(ticks); i++ {
		a, b := ticks[i], ticks[i+1]
		need := (span.Extent(a.Label)+span.Extent(b.Label))/2 + gap
		if b.Position-a.Position < need {
			return false
		}
	}
	return true
}

// usable reports whether the span and range can carry ticks at all.
func usable(lo, hi, length float64) bool {
	return finite(lo) && finite(hi) && finite(length) && length > 0
}

// offset maps v in [lo, hi] onto [0, length].
func offset(v, lo, hi, length float64) float64 {
	if hi == lo {
		return length / 2
	}
	return (v - lo) / (hi - lo) * length
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// maxTicks bounds the candidates tried for one span.
const maxTicks = 10000
