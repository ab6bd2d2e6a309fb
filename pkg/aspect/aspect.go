// Package aspect resolves a chart's outer dimensions from an aspect-ratio
// policy and the observed size of its container.
//
// A policy either takes both dimensions from the container ([Env]), one of
// them ([EnvWidth], [EnvHeight]), or none ([Fixed], [OuterWidth],
// [OuterHeight]). Until the container has been measured no policy resolves,
// which lets the chart hold back rendering until real dimensions exist.
package aspect

import (
	"fmt"
	"math"

	"github.com/matzehuels/chartistry/pkg/geom"
)

// Mode identifies how a Ratio derives the outer dimensions.
type Mode int

const (
	// ModeEnv uses the container size as is.
	ModeEnv Mode = iota
	// ModeEnvWidth takes the container width and derives the height.
	ModeEnvWidth
	// ModeEnvHeight takes the container height and derives the width.
	ModeEnvHeight
	// ModeFixed uses explicit dimensions.
	ModeFixed
	// ModeOuterWidth uses an explicit width and derives the height.
	ModeOuterWidth
	// ModeOuterHeight uses an explicit height and derives the width.
	ModeOuterHeight
)

var modeNames = map[Mode]string{
	ModeEnv:         "env",
	ModeEnvWidth:    "env_width",
	ModeEnvHeight:   "env_height",
	ModeFixed:       "fixed",
	ModeOuterWidth:  "outer_width",
	ModeOuterHeight: "outer_height",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeEnv, fmt.Errorf("invalid aspect mode: %q", s)
}

// Size is the observed size of the chart's container.
type Size struct {
	Width, Height float64
}

// Known is a resolved pair of outer dimensions.
type Known struct {
	Width, Height float64
}

// Bounds returns the outer rectangle with its origin at (0, 0).
func (k Known) Bounds() geom.Bounds { return geom.New(k.Width, k.Height) }

// Ratio is an aspect-ratio policy. The zero value is Env().
type Ratio struct {
	Mode Mode
	// Ratio is width divided by height, for the modes that derive one
	// dimension from the other.
	Ratio float64
	// Width and Height are the explicit dimensions of the fixed modes.
	Width, Height float64
}

// Env takes both dimensions from the container.
func Env() Ratio { return Ratio{Mode: ModeEnv} }

// EnvWidth takes the container width; height = width / ratio.
func EnvWidth(ratio float64) Ratio { return Ratio{Mode: ModeEnvWidth, Ratio: ratio} }

// EnvHeight takes the container height; width = height * ratio.
func EnvHeight(ratio float64) Ratio { return Ratio{Mode: ModeEnvHeight, Ratio: ratio} }

// Fixed ignores the container entirely.
func Fixed(width, height float64) Ratio {
	return Ratio{Mode: ModeFixed, Width: width, Height: height}
}

// OuterWidth fixes the width; height = width / ratio.
func OuterWidth(width, ratio float64) Ratio {
	return Ratio{Mode: ModeOuterWidth, Width: width, Ratio: ratio}
}

// OuterHeight fixes the height; width = height * ratio.
func OuterHeight(height, ratio float64) Ratio {
	return Ratio{Mode: ModeOuterHeight, Height: height, Ratio: ratio}
}

// UsesContainer reports whether the policy reads the container size.
func (r Ratio) UsesContainer() bool {
	switch r.Mode {
	case ModeEnv, ModeEnvWidth, ModeEnvHeight:
		return true
	}
	return false
}

// Resolve computes the outer dimensions. It reports false while the container
// is unmeasured, for every policy. Invalid inputs (NaN, negative, zero or
// infinite ratios and sizes) resolve to zero-size dimensions instead of
// failing.
func (r Ratio) Resolve(container Size, measured bool) (Known, bool) {
	if !measured {
		return Known{}, false
	}
	switch r.Mode {
	case ModeEnv:
		return known(container.Width, container.Height), true
	case ModeEnvWidth:
		return fromWidth(container.Width, r.Ratio), true
	case ModeEnvHeight:
		return fromHeight(container.Height, r.Ratio), true
	case ModeFixed:
		return known(r.Width, r.Height), true
	case ModeOuterWidth:
		return fromWidth(r.Width, r.Ratio), true
	case ModeOuterHeight:
		return fromHeight(r.Height, r.Ratio), true
	}
	return Known{}, true
}

func (r Ratio) String() string {
	switch r.Mode {
	case ModeEnv:
		return "env"
	case ModeEnvWidth, ModeEnvHeight:
		return fmt.Sprintf("%s(%g)", r.Mode, r.Ratio)
	case ModeFixed:
		return fmt.Sprintf("fixed(%gx%g)", r.Width, r.Height)
	case ModeOuterWidth:
		return fmt.Sprintf("outer_width(%g, %g)", r.Width, r.Ratio)
	case ModeOuterHeight:
		return fmt.Sprintf("outer_height(%g, %g)", r.Height, r.Ratio)
	}
	return r.Mode.String()
}

func fromWidth(width, ratio float64) Known {
	if !valid(width) || !positive(ratio) {
		return Known{}
	}
	return known(width, width/ratio)
}

func fromHeight(height, ratio float64) Known {
	if !valid(height) || !positive(ratio) {
		return Known{}
	}
	return known(height*ratio, height)
}

func known(width, height float64) Known {
	if !valid(width) || !valid(height) {
		return Known{}
	}
	return Known{Width: width, Height: height}
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func positive(v float64) bool {
	return valid(v) && v > 0
}
