package projection

import (
	"math"
	"testing"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestToPixel(t *testing.T) {
	inner := geom.FromPoints(50, 10, 750, 360)
	p := New(inner, geom.Extent{X: geom.Interval{Min: 0, Max: 100}, Y: geom.Interval{Min: -1, Max: 1}})

	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{0, -1, 50, 360},
		{100, 1, 750, 10},
		{50, 0, 400, 185},
	}
	for _, tt := range tests {
		px, py := p.ToPixel(tt.x, tt.y)
		if !near(px, tt.px) || !near(py, tt.py) {
			t.Errorf("ToPixel(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	p := New(geom.FromPoints(12, 7, 612, 307), geom.Extent{
		X: geom.Interval{Min: 1700000000, Max: 1700086400},
		Y: geom.Interval{Min: 3.5, Max: 99},
	})
	for _, pt := range [][2]float64{{1700000000, 3.5}, {1700043200, 50}, {1700086400, 99}, {1700001234, 42.42}} {
		px, py := p.ToPixel(pt[0], pt[1])
		x, y := p.ToData(px, py)
		if math.Abs(x-pt[0]) > 1e-3 || math.Abs(y-pt[1]) > 1e-9 {
			t.Errorf("round trip %v -> (%v, %v) -> (%v, %v)", pt, px, py, x, y)
		}
	}
}

func TestDegenerateData(t *testing.T) {
	p := New(geom.FromPoints(0, 0, 100, 100), geom.Extent{
		X: geom.Interval{Min: 5, Max: 5},
		Y: geom.Interval{Min: 0, Max: 100},
	})
	for _, x := range []float64{5, 0, 1e9} {
		if px := p.X(x); px != 50 {
			t.Errorf("X(%v) = %v, want 50", x, px)
		}
	}
	for _, px := range []float64{0, 50, 100} {
		if x, _ := p.ToData(px, 0); x != 5 {
			t.Errorf("ToData(%v) x = %v, want 5", px, x)
		}
	}
}

func TestDegeneratePixels(t *testing.T) {
	p := New(geom.FromPoints(30, 20, 30, 20), geom.Extent{
		X: geom.Interval{Min: 0, Max: 10},
		Y: geom.Interval{Min: 0, Max: 10},
	})
	px, py := p.ToPixel(7, 3)
	if px != 30 || py != 20 {
		t.Errorf("ToPixel = (%v, %v), want (30, 20)", px, py)
	}
	if x, y := p.ToData(30, 20); x != 0 || y != 0 {
		t.Errorf("ToData = (%v, %v), want (0, 0)", x, y)
	}
}

func TestEmptyExtent(t *testing.T) {
	p := New(geom.New(100, 50), geom.EmptyExtent)
	px, py := p.ToPixel(1, 1)
	if px != 50 || py != 25 {
		t.Errorf("ToPixel = (%v, %v), want centre", px, py)
	}
}

func TestMemoFollowsInputs(t *testing.T) {
	rt := reactive.NewRuntime()
	s := rt.NewScope()

	inner := reactive.NewSignal(s, geom.New(100, 100))
	data := reactive.NewSignal(s, geom.Extent{X: geom.Interval{Max: 10}, Y: geom.Interval{Max: 10}})
	m := Memo(s, inner, data)

	if px := m.Get().X(10); px != 100 {
		t.Fatalf("X(10) = %v, want 100", px)
	}
	inner.Set(geom.New(200, 100))
	if px := m.Get().X(10); px != 200 {
		t.Errorf("after resize X(10) = %v, want 200", px)
	}
	data.Set(geom.Extent{X: geom.Interval{Max: 20}, Y: geom.Interval{Max: 10}})
	if px := m.Get().X(10); px != 100 {
		t.Errorf("after data change X(10) = %v, want 100", px)
	}
}
