package ticks

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
)

// AlignedFloats generates ticks at multiples of 1 or 5 times a power of ten,
// the levels of a base-10 scale.Linear.
type AlignedFloats struct {
	// Format overrides the label of each tick. step is the chosen step as
	// formatted by the generator.
	Format func(step string, v float64) string
}

// Tick levels searched, as in scale.TickOptions.
const (
	minLevel = -1000
	maxLevel = 1000
)

func (g AlignedFloats) Generate(first, last float64, span Span) Set[float64] {
	if span == nil {
		return Set[float64]{}
	}
	length := span.Length()
	lo, hi := math.Min(first, last), math.Max(first, last)
	if !usable(lo, hi, length) || !finite(hi-lo) {
		return Set[float64]{}
	}
	if lo == hi {
		return Set[float64]{Ticks: []Tick[float64]{{
			Value:    lo,
			Position: length / 2,
			Label:    g.label(formatFloat(lo, -1), lo, -1),
		}}}
	}

	// Start at the densest level with no more than one tick per pixel.
	lin := &scale.Linear{Min: lo, Max: hi}
	opts := scale.TickOptions{
		Max:      int(math.Min(maxTicks, math.Max(2, length+1))),
		MinLevel: minLevel,
		MaxLevel: maxLevel,
	}
	guess := math.Max(minLevel, math.Min(maxLevel, 2*math.Floor(math.Log10((hi-lo)/length))))
	level, ok := opts.FindLevel(lin, int(guess))
	if !ok {
		return Set[float64]{}
	}

	var prev Set[float64]
	for ; level <= maxLevel; level++ {
		// Skip levels whose spacing is out of float range or whose count
		// is not representable.
		if step, _ := levelStep(level); step == 0 || math.IsInf(step, 0) {
			continue
		}
		if n := lin.CountTicks(level); n < 0 || n > maxTicks {
			continue
		}
		set := g.level(lin, level, length)
		if len(set.Ticks) == 0 {
			break
		}
		if fits(set.Ticks, span) {
			return set
		}
		prev = set
	}
	return single(prev)
}

// level builds the ticks of lin at level. Values are clamped into the range
// and collapsed where float precision makes neighbours equal.
func (g AlignedFloats) level(lin *scale.Linear, level int, length float64) Set[float64] {
	step, prec := levelStep(level)
	stepLabel := formatFloat(step, prec)
	values, _ := lin.TicksAtLevel(level).([]float64)

	set := Set[float64]{Step: stepLabel}
	for _, v := range values {
		if !finite(v) {
			continue
		}
		v = math.Max(lin.Min, math.Min(lin.Max, v))
		if n := len(set.Ticks); n > 0 && v <= set.Ticks[n-1].Value {
			continue
		}
		set.Ticks = append(set.Ticks, Tick[float64]{
			Value:    v,
			Position: lin.Map(v) * length,
			Label:    g.label(stepLabel, v, prec),
		})
	}
	return set
}

// levelStep returns the tick spacing of a base-10 scale.Linear level and the
// decimals needed to print it: level 0 is 1, level 1 is 5, level 2 is 10 and
// level -1 is 0.5.
func levelStep(level int) (step float64, prec int) {
	exp := int(math.Floor(float64(level) / 2))
	step = math.Pow(10, float64(exp))
	if level%2 != 0 {
		step *= 5
	}
	return step, max(0, -exp)
}

func (g AlignedFloats) label(step string, v float64, prec int) string {
	if g.Format != nil {
		return g.Format(step, v)
	}
	return formatFloat(v, prec)
}

func formatFloat(v float64, prec int) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func single[T Value](s Set[T]) Set[T] {
	if len(s.Ticks) > 1 {
		s.Ticks = s.Ticks[:1]
	}
	return s
}
