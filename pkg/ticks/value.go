package ticks

import (
	"math"
	"time"
)

// Value is the set of types an axis can carry.
type Value interface {
	float64 | time.Time
}

// Position maps v onto the float64 line. Timestamps become Unix seconds plus
// the sub-second fraction.
func Position[T Value](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case time.Time:
		if x.IsZero() {
			return math.NaN()
		}
		return float64(x.Unix()) + float64(x.Nanosecond())/1e9
	}
	return math.NaN()
}

// FromPosition inverts Position. Timestamps are returned in UTC. Non-finite
// positions map to the zero value.
func FromPosition[T Value](p float64) T {
	var zero T
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return zero
	}
	switch any(zero).(type) {
	case float64:
		return any(p).(T)
	case time.Time:
		sec, frac := math.Modf(p)
		nsec := math.Round(frac * 1e9)
		return any(time.Unix(int64(sec), int64(nsec)).UTC()).(T)
	}
	return zero
}
