package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

const cpuChart = `
title = "CPU"
tooltip = true

[source]
kind = "csv"
path = "cpu.csv"
x = "t"
y = ["cpu", "mem"]

[edges]
bottom = [{ kind = "ticks" }]
left = [{ kind = "ticks" }]
right = [{ kind = "legend" }]
`

// writeDefinition writes a chart named name and its data into a fresh
// directory and loads it.
func writeDefinition(t *testing.T, name string) *config.Definition {
	t.Helper()
	return writeDefinitionIn(t, t.TempDir(), name)
}

func writeDefinitionIn(t *testing.T, dir, name string) *config.Definition {
	t.Helper()
	csv := "t,cpu,mem\n0,1,5\n1,4,6\n2,3,7\n3,2,8\n"
	if err := os.WriteFile(filepath.Join(dir, "cpu.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name+config.Extension)
	if err := os.WriteFile(path, []byte(cpuChart), 0o644); err != nil {
		t.Fatal(err)
	}
	def, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return def
}

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var buf bytes.Buffer
	return New(&buf, log.DebugLevel), &buf
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"svg, json,,xlsx", []string{"svg", "json", "xlsx"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeDefinitionIn(t, dir, "a")
	writeDefinitionIn(t, dir, "b")
	single := writeDefinition(t, "c")

	defs, err := loadDefinitions([]string{dir, filepath.Join(single.Dir, "c.toml")})
	if err != nil {
		t.Fatalf("loadDefinitions() error: %v", err)
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestLoadDefinitionsErrors(t *testing.T) {
	if _, err := loadDefinitions([]string{filepath.Join(t.TempDir(), "nope.toml")}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file: got %v, want NOT_FOUND", err)
	}
	if _, err := loadDefinitions([]string{t.TempDir()}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("empty dir: got %v, want NOT_FOUND", err)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	for _, name := range []string{"render", "layout", "list", "preview", "graph", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestQuietFlagDropsProgress(t *testing.T) {
	c, logs := newTestCLI(t)
	def := writeDefinition(t, "cpu")
	root := c.RootCommand()
	root.SetArgs([]string{"--quiet", "render", "--no-cache", "-o", t.TempDir(), filepath.Join(def.Dir, "cpu.toml")})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Contains(logs.String(), "Rendered") {
		t.Errorf("progress logged with --quiet: %s", logs.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupt", fmt.Errorf("render: %w", context.Canceled), 130},
		{"bad definition", errors.New(errors.ErrCodeInvalidConfig, "unknown edge"), 2},
		{"bad format", errors.New(errors.ErrCodeInvalidFormat, "gif"), 2},
		{"missing file", errors.New(errors.ErrCodeNotFound, "cpu.toml"), 3},
		{"source down", errors.Wrap(errors.ErrCodeSourceUnavailable, context.DeadlineExceeded, "mongo"), 4},
		{"other", fmt.Errorf("write cpu.svg: disk full"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	c, logs := newTestCLI(t)
	def := writeDefinition(t, "cpu")
	out := filepath.Join(t.TempDir(), "out")

	opts := renderOpts{
		output:  out,
		formats: "svg,json",
		width:   600,
		height:  300,
		jobs:    2,
	}
	if err := c.runRender(context.Background(), []string{filepath.Join(def.Dir, "cpu.toml")}, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(out, "cpu.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("CPU")) {
		t.Errorf("svg output missing chart: %.200s", svg)
	}
	if _, err := os.Stat(filepath.Join(out, "cpu.json")); err != nil {
		t.Errorf("json output: %v", err)
	}
	if !strings.Contains(logs.String(), "Rendered 1 chart(s)") {
		t.Errorf("progress not logged: %s", logs.String())
	}
}

func TestRunRenderInvalidFormat(t *testing.T) {
	c, _ := newTestCLI(t)
	def := writeDefinition(t, "cpu")

	err := c.runRender(context.Background(), []string{def.Dir}, renderOpts{formats: "gif", width: 100, height: 100})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("runRender() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	defs := []*config.Definition{
		writeDefinitionIn(t, dir, "z"),
		writeDefinitionIn(t, dir, "a"),
		writeDefinitionIn(t, dir, "m"),
	}
	runner := pipeline.NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	opts := renderOpts{output: t.TempDir(), width: 400, height: 200, jobs: 3}

	var logs bytes.Buffer
	prog := newRenderProgress(newLogger(&logs, log.InfoLevel), []string{"svg"})
	results, err := renderAll(context.Background(), runner, defs, opts, []string{"svg"}, prog)
	if err != nil {
		t.Fatalf("renderAll() error: %v", err)
	}
	prog.done()
	if !strings.Contains(logs.String(), "Rendered 3 chart(s)") || !strings.Contains(logs.String(), "rows=12") {
		t.Errorf("summary = %q, want 3 charts with 12 rows", logs.String())
	}
	for i, r := range results {
		if r.def != defs[i] {
			t.Errorf("results[%d] = %s, want %s", i, r.def.Name, defs[i].Name)
		}
		if len(r.files) != 1 || filepath.Base(r.files[0]) != defs[i].Name+".svg" {
			t.Errorf("results[%d].files = %v", i, r.files)
		}
	}
}

func mountForTest(t *testing.T) *pipeline.Mounted {
	t.Helper()
	def := writeDefinition(t, "cpu")
	runner := pipeline.NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	tbl, err := runner.Load(context.Background(), def)
	if err != nil {
		t.Fatal(err)
	}
	m, err := runner.Layout(context.Background(), def, tbl, "", pipeline.Options{Definition: def, Width: 800, Height: 400})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestSlotTable(t *testing.T) {
	m := mountForTest(t)
	snap, _ := m.Chart.Layout()

	out := slotTable(snap)
	for _, want := range []string{"Edge", "top", "right", "bottom", "left"} {
		if !strings.Contains(out, want) {
			t.Errorf("slot table missing %q:\n%s", want, out)
		}
	}
}

func TestDefinitionTable(t *testing.T) {
	out := definitionTable([]*config.Definition{writeDefinition(t, "cpu")})
	for _, want := range []string{"cpu", "CPU", "csv", "env"} {
		if !strings.Contains(out, want) {
			t.Errorf("definition table missing %q:\n%s", want, out)
		}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewModel(t *testing.T) {
	m := mountForTest(t)
	p := NewPreviewModel(m, 800, 400)
	if p.Renders != 1 {
		t.Fatalf("Renders = %d after mount, want 1", p.Renders)
	}

	p.Update(key("right"))
	if p.Pointer != pointerSteps/2 {
		t.Errorf("Pointer = %d, want %d", p.Pointer, pointerSteps/2)
	}
	if tip := tooltipLines(m.Chart.Scene()); len(tip) == 0 {
		t.Error("no tooltip after moving the pointer")
	}
	p.Update(key("right"))
	if p.Pointer != pointerSteps/2+1 {
		t.Errorf("Pointer = %d after a second step", p.Pointer)
	}

	p.Update(key("esc"))
	if tip := tooltipLines(m.Chart.Scene()); tip != nil {
		t.Errorf("tooltip %v after esc", tip)
	}

	p.Update(key("1"))
	if e := m.Chart.Entries(); e[0].Visible || !e[1].Visible {
		t.Errorf("entries after toggling line 1: %+v", e)
	}

	before := p.Renders
	p.Update(key("+"))
	if p.Width != 880 {
		t.Errorf("Width = %v after +, want 880", p.Width)
	}
	if w, _, _ := m.Chart.Size(); w != 880 {
		t.Errorf("chart width = %v, want 880", w)
	}
	if p.Renders <= before {
		t.Error("resize did not re-render")
	}

	view := p.View()
	for _, want := range []string{"CPU", "cpu", "mem", "880×440"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if _, cmd := p.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestTooltipLinesNil(t *testing.T) {
	if tooltipLines(nil) != nil {
		t.Error("tooltipLines(nil) should be nil")
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr kept host = %q", got)
	}
}
