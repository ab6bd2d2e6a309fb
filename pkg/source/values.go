package source

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var defaultLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

// parseX parses an x cell. Numbers are taken as they are; anything else is
// parsed as a timestamp and reported with isTime.
func parseX(s, layout string) (v float64, isTime, ok bool) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, false, true
	}
	if t, ok := parseTime(s, layout); ok {
		return unix(t), true, true
	}
	return math.NaN(), false, false
}

func parseTime(s, layout string) (time.Time, bool) {
	layouts := defaultLayouts
	if layout != "" {
		layouts = []string{layout}
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseY parses a y cell. Empty or unparsable cells are missing values.
func parseY(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// unix returns t as fractional Unix seconds.
func unix(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// number converts a decoded JSON or BSON scalar.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return math.NaN(), false
}
