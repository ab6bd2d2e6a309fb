package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartistry/pkg/aspect"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/source"
)

const loadDef = `
title = "Load"
padding = 2
tooltip = true
y_min = 0

[aspect]
mode = "fixed"
width = 800
height = 400

[source]
kind = "csv"
path = "load.csv"
x = "t"
y = ["cpu"]

[[lines]]
column = "cpu"
label = "CPU"
colour = "#ff0000"

[edges]
right = [{ kind = "label", text = "%", padding = 0 }]
left = [{ kind = "spacer", size = 30 }]

[[inner]]
kind = "grid_y"

[[inner]]
kind = "legend"
position = "bottom_left"
`

func table() *source.Table {
	return &source.Table{
		X:       []float64{0, 1, 2},
		Columns: []source.Column{{Name: "cpu", Values: []float64{1, 3, 2}}},
	}
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte(loadDef), "load", "/charts")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Name != "load" || d.Dir != "/charts" || d.Hash == "" {
		t.Errorf("identity = %q %q %q", d.Name, d.Dir, d.Hash)
	}
	r, err := d.Ratio()
	if err != nil {
		t.Fatal(err)
	}
	if r != aspect.Fixed(800, 400) {
		t.Errorf("Ratio = %v, want fixed(800x400)", r)
	}
	if d.Source.Kind != source.KindCSV || len(d.Edges.Right) != 1 || len(d.Inner) != 2 {
		t.Errorf("definition = %+v", d)
	}
}

func TestParseErrors(t *testing.T) {
	const src = "[source]\nkind = \"csv\"\npath = \"a.csv\"\nx = \"t\"\ny = [\"v\"]\n"
	tests := []struct {
		name string
		def  string
		code errors.Code
	}{
		{"syntax", "title = ", errors.ErrCodeInvalidConfig},
		{"unknown key", src + "colour = \"red\"\n", errors.ErrCodeInvalidConfig},
		{"unknown component", src + "[edges]\ntop = [{ kind = \"sparkline\" }]\n", errors.ErrCodeInvalidConfig},
		{"bad anchor", src + "[edges]\ntop = [{ kind = \"label\", anchor = \"left\" }]\n", errors.ErrCodeInvalidConfig},
		{"bad inset", src + "[[inner]]\nkind = \"legend\"\nposition = \"centre\"\n", errors.ErrCodeInvalidConfig},
		{"bad marker", src + "[[inner]]\nkind = \"marker\"\n", errors.ErrCodeInvalidConfig},
		{"aspect without ratio", src + "[aspect]\nmode = \"env_width\"\n", errors.ErrCodeInvalidConfig},
		{"unknown aspect", src + "[aspect]\nmode = \"square\"\n", errors.ErrCodeInvalidConfig},
		{"huge", src + "[aspect]\nmode = \"fixed\"\nwidth = 1e6\nheight = 1\n", errors.ErrCodeInvalidDimensions},
		{"missing source", "title = \"x\"\n", errors.ErrCodeInvalidSource},
		{"unknown face", src + "[font]\nface = \"comic\"\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.def), "chart", ".")
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestParseRejectsBadName(t *testing.T) {
	_, err := Parse([]byte(loadDef), "../etc", ".")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.toml", "a.toml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(loadDef), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "a" || defs[1].Name != "b" {
		t.Errorf("defs = %v", defs)
	}
	if defs[0].Dir != dir {
		t.Errorf("Dir = %q, want %q", defs[0].Dir, dir)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestOptions(t *testing.T) {
	d, err := Parse([]byte(loadDef), "load", ".")
	if err != nil {
		t.Fatal(err)
	}
	opts, err := Options[float64](d, table())
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Top) != 1 || len(opts.Right) != 1 || len(opts.Left) != 1 || len(opts.Bottom) != 0 {
		t.Errorf("edges = %d/%d/%d/%d", len(opts.Top), len(opts.Right), len(opts.Bottom), len(opts.Left))
	}
	if len(opts.Inner) != 2 || !opts.Tooltip {
		t.Errorf("inner = %d, tooltip = %v", len(opts.Inner), opts.Tooltip)
	}
	lines := opts.Series.Lines
	if len(lines) != 1 || lines[0].Name != "CPU" || lines[0].Colour != "#ff0000" {
		t.Fatalf("lines = %+v", lines)
	}
	if !opts.Series.YRange.HasMin || opts.Series.YRange.Min != 0 {
		t.Errorf("YRange = %+v, want min 0", opts.Series.YRange)
	}
	if got := lines[0].Y(source.Row{X: 1, Y: []float64{7}}); got != 7 {
		t.Errorf("Y = %g, want 7", got)
	}
}

func TestMountLaysOut(t *testing.T) {
	d, err := Parse([]byte(loadDef), "load", ".")
	if err != nil {
		t.Fatal(err)
	}
	rt := reactive.NewRuntime()
	h, err := Mount(rt.NewScope(), d, table(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Unmount()

	h.Observe(0, 0)
	snap, ok := h.Layout()
	if !ok {
		t.Fatal("Layout not ready after Observe")
	}
	// title: 16 + 2*2; label: 16; spacer: 30
	want := geom.FromPoints(30, 20, 784, 400)
	if snap.Inner != want {
		t.Errorf("inner = %v, want %v", snap.Inner, want)
	}
	if n := h.Scene().Find("inset-legend"); n == nil {
		t.Error("scene has no inset legend")
	}
	if entries := h.Entries(); len(entries) != 1 || entries[0].Name != "CPU" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestMountFontFace(t *testing.T) {
	d, err := Parse([]byte(loadDef+"\n[font]\nface = \"go\"\nsize = 12\n"), "load", ".")
	if err != nil {
		t.Fatal(err)
	}
	if d.Font != (fonts.Font{Face: fonts.FaceGo, Size: 12}) {
		t.Fatalf("font = %+v", d.Font)
	}
	rt := reactive.NewRuntime()
	h, err := Mount(rt.NewScope(), d, table(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Unmount()

	h.Observe(0, 0)
	snap, _ := h.Layout()
	// The title is one Go line plus 2px padding above and below.
	if want := d.Font.LineHeight() + 4; snap.Inner.Top != want {
		t.Errorf("inner top = %v, want %v", snap.Inner.Top, want)
	}
}

func TestMountTimeAxis(t *testing.T) {
	d, err := Parse([]byte(loadDef), "load", ".")
	if err != nil {
		t.Fatal(err)
	}
	tbl := table()
	tbl.Time = true
	tbl.X = []float64{1.7e9, 1.7e9 + 60, 1.7e9 + 120}

	rt := reactive.NewRuntime()
	h, err := Mount(rt.NewScope(), d, tbl, nil)
	if err != nil {
		t.Fatal(err)
	}
	h.Observe(0, 0)
	p, ok := h.Projection()
	if !ok {
		t.Fatal("no projection")
	}
	if ext := p.Data().X; ext.Min != 1.7e9 || ext.Max != 1.7e9+120 {
		t.Errorf("x extent = %+v", ext)
	}
}

func TestExampleDefinitions(t *testing.T) {
	defs, err := LoadDir(filepath.Join("..", "..", "examples", "charts"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name+":"+d.Source.Kind)
	}
	want := []string{"latency:json", "orders:mongo", "temperature:csv", "up:prometheus"}
	if len(names) != len(want) {
		t.Fatalf("examples = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("examples[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
