package layout

import (
	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
)

// Attr holds the attributes shared by components. Nil fields inherit.
type Attr struct {
	Font    reactive.Reader[fonts.Font]
	Padding reactive.Reader[geom.Padding]
	Debug   reactive.Reader[bool]
}

// Defaults returns the library defaults: the 10x16 font, padding of one
// character width on every side and no debug outlines.
func Defaults() Attr {
	return Attr{
		Font:    reactive.Of(fonts.Default()),
		Padding: reactive.Of(geom.Uniform(fonts.DefaultWidth)),
		Debug:   reactive.Of(false),
	}
}

// Inherit fills the unset fields of a from parent.
func (a Attr) Inherit(parent Attr) Attr {
	if a.Font == nil {
		a.Font = parent.Font
	}
	if a.Padding == nil {
		a.Padding = parent.Padding
	}
	if a.Debug == nil {
		a.Debug = parent.Debug
	}
	return a
}

// WithFont returns a copy with a static font.
func (a Attr) WithFont(f fonts.Font) Attr {
	a.Font = reactive.Of(f)
	return a
}

// WithPadding returns a copy with static padding.
func (a Attr) WithPadding(p geom.Padding) Attr {
	a.Padding = reactive.Of(p)
	return a
}

// WithDebug returns a copy with a static debug flag.
func (a Attr) WithDebug(debug bool) Attr {
	a.Debug = reactive.Of(debug)
	return a
}

// font reads the font, tracking the read.
func (a Attr) font() fonts.Font {
	if a.Font == nil {
		return fonts.Default()
	}
	return a.Font.Get().OrDefault()
}

func (a Attr) padding() geom.Padding {
	if a.Padding == nil {
		return geom.Uniform(fonts.DefaultWidth)
	}
	return a.Padding.Get()
}

func (a Attr) debug() bool {
	return a.Debug != nil && a.Debug.Get()
}
