// Package fonts provides text metrics for chart layout.
//
// Layout never renders glyphs; it only needs to know how much room a label
// takes. [Font] is the fixed-pitch model used by default: every character is
// Width pixels wide and a line is Height pixels tall. Setting Font.Face
// measures with a real font face from golang.org/x/image instead: the 7x13
// bitmap face or the bundled Go Regular font at Font.Size pixels.
package fonts

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Default character cell in pixels.
const (
	DefaultWidth  = 10.0
	DefaultHeight = 16.0
)

// FontFamily is the CSS font-family written on SVG text. The fixed-pitch
// model matches monospace faces best.
const FontFamily = `'SF Mono', Menlo, Consolas, monospace`

// Face names accepted by Font.Face.
const (
	FaceFixed = ""
	FaceBasic = "basic"
	FaceGo    = "go"
)

// Metrics measures text.
type Metrics interface {
	// TextWidth returns the rendered width of a single line of text.
	TextWidth(s string) float64
	// LineHeight returns the height of one line of text.
	LineHeight() float64
}

// Font describes how text is measured. Without a Face it is a fixed-pitch
// model of Width pixels per character and Height pixels per line.
type Font struct {
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`
	// Face selects a real font face; Width and Height are then ignored.
	Face string `json:"face,omitempty" toml:"face"`
	// Size is the pixel size of the Go face. Zero means DefaultHeight.
	Size float64 `json:"size,omitempty" toml:"size"`
}

// Default returns the 10x16 font used when nothing else is configured.
func Default() Font { return Font{Width: DefaultWidth, Height: DefaultHeight} }

// IsZero reports whether the font is unset.
func (f Font) IsZero() bool { return f.Width == 0 && f.Height == 0 && f.Face == "" }

// Validate reports an unknown face or a negative size.
func (f Font) Validate() error {
	if f.Width < 0 || f.Height < 0 || f.Size < 0 {
		return fmt.Errorf("font size must be non-negative, got %s", f)
	}
	switch f.Face {
	case FaceFixed, FaceBasic, FaceGo:
		return nil
	}
	return fmt.Errorf("unknown font face %q", f.Face)
}

// OrDefault returns f, or Default when f is unset.
func (f Font) OrDefault() Font {
	if f.IsZero() {
		return Default()
	}
	return f
}

// TextWidth returns the width of s: the character count times the character
// width, or the advance width in the selected face.
func (f Font) TextWidth(s string) float64 {
	if face := f.face(); face != nil {
		return face.TextWidth(s)
	}
	return float64(utf8.RuneCountInString(s)) * nonNeg(f.Width)
}

// LineHeight returns Height, or the line height of the selected face.
func (f Font) LineHeight() float64 {
	if face := f.face(); face != nil {
		return face.LineHeight()
	}
	return nonNeg(f.Height)
}

// CharWidth is the width of one digit, used as the unit for default
// padding and legend swatches.
func (f Font) CharWidth() float64 { return f.TextWidth("0") }

// FontSize is the CSS font size matching the model: text is drawn at the line
// height in pixels, or at the face's size.
func (f Font) FontSize() float64 {
	switch f.Face {
	case FaceBasic:
		return 13
	case FaceGo:
		return f.goSize()
	}
	return f.LineHeight()
}

// Family is the CSS font family text measured with f should be drawn in.
func (f Font) Family() string {
	switch f.Face {
	case FaceGo:
		return `Go, 'Go Regular', sans-serif`
	case FaceBasic:
		return `monospace`
	}
	return FontFamily
}

func (f Font) String() string {
	switch f.Face {
	case FaceFixed:
		return fmt.Sprintf("%gx%g", f.Width, f.Height)
	case FaceGo:
		return fmt.Sprintf("go@%g", f.goSize())
	}
	return f.Face
}

func (f Font) goSize() float64 {
	if f.Size <= 0 || math.IsNaN(f.Size) || math.IsInf(f.Size, 0) {
		return DefaultHeight
	}
	return f.Size
}

var (
	facesMu sync.Mutex
	faces   = map[Font]*Face{}
)

// face returns the cached face selected by f, or nil for the fixed-pitch
// model. A face that fails to load falls back to the fixed-pitch default.
func (f Font) face() *Face {
	if f.Face == FaceFixed {
		return nil
	}
	key := Font{Face: f.Face}
	if f.Face == FaceGo {
		key.Size = f.goSize()
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[key]; ok {
		return face
	}
	var face *Face
	switch key.Face {
	case FaceBasic:
		face = Basic()
	case FaceGo:
		face, _ = GoRegular(key.Size)
	}
	if face == nil {
		face = NewFixed(Default())
	}
	faces[key] = face
	return face
}

// Face measures text with a font.Face. It is safe for concurrent use.
type Face struct {
	mu     sync.Mutex
	face   font.Face
	fixed  *Font
	height float64
}

// NewFixed returns a Face measuring with the fixed-pitch model f.
func NewFixed(f Font) *Face {
	f.Face = FaceFixed
	return &Face{fixed: &f, height: f.LineHeight()}
}

// NewFace wraps face. The line height is taken from the face metrics.
func NewFace(face font.Face) *Face {
	return &Face{face: face, height: toFloat(face.Metrics().Height)}
}

// Basic returns metrics for the 7x13 bitmap face from x/image.
func Basic() *Face { return NewFace(basicfont.Face7x13) }

var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

// GoRegular returns metrics for the bundled Go Regular font at size pixels.
// The font is parsed once on first use.
func GoRegular(size float64) (*Face, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	if goRegularErr != nil {
		return nil, fmt.Errorf("parse go regular: %w", goRegularErr)
	}
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		size = DefaultHeight
	}
	face, err := opentype.NewFace(goRegular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return NewFace(face), nil
}

// TextWidth returns the advance width of s.
func (f *Face) TextWidth(s string) float64 {
	if f.fixed != nil {
		return f.fixed.TextWidth(s)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return toFloat(font.MeasureString(f.face, s))
}

// LineHeight returns the face's recommended line height.
func (f *Face) LineHeight() float64 { return f.height }

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func nonNeg(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
