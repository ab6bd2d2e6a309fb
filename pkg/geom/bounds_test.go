package geom

import (
	"math"
	"testing"
)

func TestShrinkClampsToZero(t *testing.T) {
	base := []Bounds{
		New(800, 400),
		FromPoints(10, 20, 110, 70),
		New(0, 0),
	}
	margins := [][4]float64{
		{0, 0, 0, 0},
		{10, 20, 30, 40},
		{500, 0, 500, 0},
		{0, 900, 0, 900},
		{1e9, 1e9, 1e9, 1e9},
	}

	for _, b := range base {
		for _, m := range margins {
			got := b.Shrink(m[0], m[1], m[2], m[3])
			wantW := math.Max(0, b.Width()-m[3]-m[1])
			wantH := math.Max(0, b.Height()-m[0]-m[2])
			if got.Width() != wantW {
				t.Errorf("%v.Shrink(%v) width = %v, want %v", b, m, got.Width(), wantW)
			}
			if got.Height() != wantH {
				t.Errorf("%v.Shrink(%v) height = %v, want %v", b, m, got.Height(), wantH)
			}
			if got.Width() < 0 || got.Height() < 0 {
				t.Errorf("%v.Shrink(%v) produced negative bounds %v", b, m, got)
			}
		}
	}
}

func TestShrinkIgnoresBadMargins(t *testing.T) {
	b := New(100, 50)
	got := b.Shrink(math.NaN(), -10, math.Inf(1), -1)
	if got != b {
		t.Errorf("Shrink with NaN/negative margins = %v, want %v", got, b)
	}
}

func TestNewSanitisesSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantW, wantH  float64
	}{
		{"normal", 800, 600, 800, 600},
		{"negative width", -5, 10, 0, 10},
		{"nan height", 10, math.NaN(), 10, 0},
		{"inf width", math.Inf(1), 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.width, tt.height)
			if b.Width() != tt.wantW || b.Height() != tt.wantH {
				t.Errorf("New(%v, %v) = %vx%v, want %vx%v",
					tt.width, tt.height, b.Width(), b.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	b := New(100, 50)

	tests := []struct {
		name      string
		edge      Edge
		offset    float64
		wantSlice Bounds
		wantRest  Bounds
	}{
		{"top", Top, 20, FromPoints(0, 0, 100, 20), FromPoints(0, 20, 100, 50)},
		{"bottom", Bottom, 20, FromPoints(0, 30, 100, 50), FromPoints(0, 0, 100, 30)},
		{"left", Left, 30, FromPoints(0, 0, 30, 50), FromPoints(30, 0, 100, 50)},
		{"right", Right, 30, FromPoints(70, 0, 100, 50), FromPoints(0, 0, 70, 50)},
		{"oversized", Top, 80, FromPoints(0, 0, 100, 50), FromPoints(0, 50, 100, 50)},
		{"negative", Left, -5, FromPoints(0, 0, 0, 50), b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slice, rest := b.Split(tt.edge, tt.offset)
			if slice != tt.wantSlice {
				t.Errorf("slice = %v, want %v", slice, tt.wantSlice)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestCentre(t *testing.T) {
	b := FromPoints(20, 10, 80, 50)
	if b.CentreX() != 50 {
		t.Errorf("CentreX() = %v, want 50", b.CentreX())
	}
	if b.CentreY() != 30 {
		t.Errorf("CentreY() = %v, want 30", b.CentreY())
	}
	if !b.Contains(50, 30) || b.Contains(0, 0) {
		t.Error("Contains() disagrees with bounds")
	}
}

func TestAnchorMapPoints(t *testing.T) {
	tests := []struct {
		anchor Anchor
		want   float64
	}{
		{Start, 1},
		{Middle, 2},
		{End, 3},
	}
	for _, tt := range tests {
		if got := tt.anchor.MapPoints(1, 2, 3); got != tt.want {
			t.Errorf("%v.MapPoints() = %v, want %v", tt.anchor, got, tt.want)
		}
	}
}

func TestParseEdge(t *testing.T) {
	for _, e := range Edges {
		got, err := ParseEdge(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEdge(%q) = %v, %v", e.String(), got, err)
		}
	}
	if _, err := ParseEdge("middle"); err == nil {
		t.Error("ParseEdge(middle) should fail")
	}
}

func TestIntervalUnion(t *testing.T) {
	a := EmptyInterval.Include(3).Include(math.NaN()).Include(1)
	if a != (Interval{Min: 1, Max: 3}) {
		t.Fatalf("Include = %v", a)
	}
	if got := a.Union(EmptyInterval); got != a {
		t.Errorf("Union(empty) = %v, want %v", got, a)
	}
	if got := EmptyInterval.Union(a); got != a {
		t.Errorf("empty.Union = %v, want %v", got, a)
	}
	if got := a.Union(Interval{Min: -2, Max: 2}); got != (Interval{Min: -2, Max: 3}) {
		t.Errorf("Union = %v", got)
	}
	if !EmptyInterval.IsDegenerate() || EmptyInterval.Len() != 0 {
		t.Error("empty interval should be degenerate with zero length")
	}
}
