package ticks

import (
	"fmt"
	"math"
	"time"
)

// Unit is a calendar unit used by Timestamps.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{"millisecond", "second", "minute", "hour", "day", "week", "month", "year"}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Period is a multiple of a calendar unit, e.g. 15 minutes.
type Period struct {
	Unit Unit
	N    int
}

func (p Period) String() string {
	if p.N == 1 {
		return "1 " + p.Unit.String()
	}
	return fmt.Sprintf("%d %ss", p.N, p.Unit)
}

// approx returns a nominal duration used to estimate tick counts.
func (p Period) approx() time.Duration {
	n := time.Duration(p.N)
	switch p.Unit {
	case Millisecond:
		return n * time.Millisecond
	case Second:
		return n * time.Second
	case Minute:
		return n * time.Minute
	case Hour:
		return n * time.Hour
	case Day:
		return n * 24 * time.Hour
	case Week:
		return n * 7 * 24 * time.Hour
	case Month:
		return n * 30 * 24 * time.Hour
	default:
		return n * 365 * 24 * time.Hour
	}
}

// floor truncates t to the period boundary at or before t, in t's location.
func (p Period) floor(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()
	switch p.Unit {
	case Millisecond:
		ms := t.Nanosecond() / int(time.Millisecond)
		return time.Date(y, mo, d, h, mi, s, (ms-ms%p.N)*int(time.Millisecond), loc)
	case Second:
		return time.Date(y, mo, d, h, mi, s-s%p.N, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi-mi%p.N, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h-h%p.N, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		back := (int(t.Weekday()) + 6) % 7 // days since Monday
		return time.Date(y, mo, d-back, 0, 0, 0, 0, loc)
	case Month:
		m := int(mo) - 1
		return time.Date(y, time.Month(m-m%p.N+1), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y-mod(y, p.N), time.January, 1, 0, 0, 0, 0, loc)
	}
}

// next returns the boundary one period after t. t must be a boundary.
func (p Period) next(t time.Time) time.Time {
	switch p.Unit {
	case Millisecond:
		return t.Add(time.Duration(p.N) * time.Millisecond)
	case Second:
		return t.Add(time.Duration(p.N) * time.Second)
	case Minute:
		return t.Add(time.Duration(p.N) * time.Minute)
	case Hour:
		return t.Add(time.Duration(p.N) * time.Hour)
	case Day:
		return t.AddDate(0, 0, p.N)
	case Week:
		return t.AddDate(0, 0, 7*p.N)
	case Month:
		return t.AddDate(0, p.N, 0)
	default:
		return t.AddDate(p.N, 0, 0)
	}
}

// layout is the label layout for ticks of this period.
func (p Period) layout() string {
	switch p.Unit {
	case Millisecond:
		return "15:04:05.000"
	case Second:
		return "15:04:05"
	case Minute, Hour:
		return "15:04"
	case Day, Week:
		return "2006-01-02"
	case Month:
		return "2006-01"
	default:
		return "2006"
	}
}

// DefaultPeriods are tried from densest to sparsest.
var DefaultPeriods = []Period{
	{Millisecond, 1}, {Millisecond, 2}, {Millisecond, 5}, {Millisecond, 10},
	{Millisecond, 20}, {Millisecond, 50}, {Millisecond, 100}, {Millisecond, 200},
	{Millisecond, 500},
	{Second, 1}, {Second, 5}, {Second, 15}, {Second, 30},
	{Minute, 1}, {Minute, 5}, {Minute, 15}, {Minute, 30},
	{Hour, 1}, {Hour, 3}, {Hour, 6}, {Hour, 12},
	{Day, 1}, {Week, 1},
	{Month, 1}, {Month, 3}, {Month, 6},
	{Year, 1}, {Year, 2}, {Year, 5}, {Year, 10}, {Year, 20}, {Year, 50},
	{Year, 100}, {Year, 200}, {Year, 500}, {Year, 1000},
}

// Timestamps generates ticks on calendar period boundaries, aligned in the
// location of the first value.
type Timestamps struct {
	// Periods overrides DefaultPeriods. It must be ordered densest first.
	Periods []Period
	// Format overrides the label of each tick. step is the period, e.g.
	// "15 minutes".
	Format func(step string, v time.Time) string
}

func (g Timestamps) Generate(first, last time.Time, span Span) Set[time.Time] {
	if span == nil || first.IsZero() || last.IsZero() {
		return Set[time.Time]{}
	}
	if last.Before(first) {
		first, last = last, first
	}
	length := span.Length()
	lo, hi := Position(first), Position(last)
	if !usable(lo, hi, length) {
		return Set[time.Time]{}
	}
	if lo == hi {
		return Set[time.Time]{Ticks: []Tick[time.Time]{{
			Value:    first,
			Position: length / 2,
			Label:    g.label("", first, time.DateTime),
		}}}
	}

	periods := g.Periods
	if len(periods) == 0 {
		periods = DefaultPeriods
	}
	rangeSec := hi - lo

	var prev Set[time.Time]
	for _, p := range periods {
		if p.N <= 0 {
			continue
		}
		count := rangeSec / p.approx().Seconds()
		if count > length || count > maxTicks {
			continue
		}
		set := g.level(p, first, last, lo, hi, length)
		if len(set.Ticks) == 0 {
			break
		}
		if fits(set.Ticks, span) {
			return set
		}
		prev = set
	}
	if len(prev.Ticks) == 0 {
		// No boundary of any period falls inside the range.
		return Set[time.Time]{Ticks: []Tick[time.Time]{{
			Value:    first,
			Position: 0,
			Label:    g.label("", first, "2006-01-02 15:04:05.000"),
		}}}
	}
	return single(prev)
}

func (g Timestamps) level(p Period, first, last time.Time, lo, hi, length float64) Set[time.Time] {
	step := p.String()
	set := Set[time.Time]{Step: step}
	for t := p.floor(first); !t.After(last); t = p.next(t) {
		if t.Before(first) {
			continue
		}
		pos := offset(Position(t), lo, hi, length)
		if n := len(set.Ticks); n > 0 && pos <= set.Ticks[n-1].Position {
			continue
		}
		set.Ticks = append(set.Ticks, Tick[time.Time]{
			Value:    t,
			Position: math.Min(pos, length),
			Label:    g.label(step, t, p.layout()),
		})
		if len(set.Ticks) > maxTicks {
			break
		}
	}
	return set
}

func (g Timestamps) label(step string, t time.Time, layout string) string {
	if g.Format != nil {
		return g.Format(step, t)
	}
	return t.Format(layout)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
