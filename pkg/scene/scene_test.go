package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/chartistry/pkg/geom"
)

func sample() *Node {
	root := New("chart", geom.New(200, 100))
	axis := New("axis", geom.FromPoints(0, 80, 200, 100)).
		Add(Text{X: 100, Y: 90, Text: "a < b", Anchor: geom.Middle})
	plot := New("plot", geom.FromPoints(0, 0, 200, 80)).WithDebug(true).
		Add(Polyline{Points: []Point{{0, 80}, {100, 40}, {200, 0}}, Colour: "#268bd2", Width: 2}).
		Add(Line{X1: 0, Y1: 40, X2: 200, Y2: 40, Dash: "2,2"})
	return root.Append(axis, nil, plot)
}

func TestFind(t *testing.T) {
	root := sample()
	if len(root.Children) != 2 {
		t.Fatalf("Append kept nil child: %d children", len(root.Children))
	}
	if n := root.Find("plot"); n == nil || !n.Debug {
		t.Errorf("Find(plot) = %+v", n)
	}
	if root.Find("legend") != nil {
		t.Error("Find(legend) should be nil")
	}

	var classes []string
	for n := range root.All() {
		classes = append(classes, n.Class)
	}
	if got := strings.Join(classes, ","); got != "chart,axis,plot" {
		t.Errorf("walk order = %s", got)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSVG(&buf, sample(), 200, 100, WithTitle("demo"), WithBackground("white"), WithStyleSheet(".plot{opacity:1}"))
	if err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<svg",
		"</svg>",
		"<title>",
		"demo",
		".plot{opacity:1}",
		`class="axis"`,
		`class="plot"`,
		"a &lt; b",
		"text-anchor:middle",
		"stroke-dasharray:4,2",
		"stroke-dasharray:2,2",
		"<polyline",
		"fill:white",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteSVGSkipsEmpty(t *testing.T) {
	root := New("empty", geom.New(10, 10)).
		Add(Text{Text: ""}, Polyline{Points: []Point{{1, 1}}})
	var buf bytes.Buffer
	if err := WriteSVG(&buf, root, 10, 10); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<text") || strings.Contains(buf.String(), "<polyline") {
		t.Errorf("empty ops were drawn:\n%s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	if err := WriteSVG(failWriter{}, sample(), 10, 10); err == nil {
		t.Error("WriteSVG should report the writer's error")
	}
}
