package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

func renderedResult(rows int, loadHit bool) *pipeline.Result {
	return &pipeline.Result{
		Stats:     pipeline.Stats{Rows: rows, LoadTime: 3 * time.Millisecond},
		CacheInfo: pipeline.CacheInfo{LoadHit: loadHit},
	}
}

func TestRenderProgressLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		want      []string
		wantNoLog []string
	}{
		{
			name:      "summary only at info",
			level:     log.InfoLevel,
			want:      []string{"Rendered 2 chart(s)", "format=svg,json", "rows=7"},
			wantNoLog: []string{"chart rendered"},
		},
		{
			name:  "per-chart records at debug",
			level: log.DebugLevel,
			want:  []string{"chart rendered", "chart=cpu", "chart=mem", "rows=3", "load_hit=true", "Rendered 2 chart(s)"},
		},
		{
			name:      "nothing at warn",
			level:     log.WarnLevel,
			wantNoLog: []string{"Rendered", "chart rendered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prog := newRenderProgress(newLogger(&buf, tt.level), []string{"svg", "json"})
			prog.chart(&config.Definition{Name: "cpu"}, renderedResult(3, true))
			prog.chart(&config.Definition{Name: "mem"}, renderedResult(4, false))
			prog.done()

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.wantNoLog {
				if strings.Contains(out, w) {
					t.Errorf("output has %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderProgressConcurrentCharts(t *testing.T) {
	var buf bytes.Buffer
	prog := newRenderProgress(newLogger(&buf, log.InfoLevel), []string{"svg"})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prog.chart(&config.Definition{Name: "cpu"}, renderedResult(5, false))
		}()
	}
	wg.Wait()
	prog.done()

	if out := buf.String(); !strings.Contains(out, "Rendered 8 chart(s)") || !strings.Contains(out, "rows=40") {
		t.Errorf("summary = %q, want 8 charts and 40 rows", out)
	}
}

func TestChartLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	chartLogger(ctx, &config.Definition{Name: "cpu"}).Debug("reactive graph", "nodes", 12)

	out := buf.String()
	for _, w := range []string{"reactive graph", "chart=cpu", "nodes=12"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q: %s", w, out)
		}
	}
}

func TestChartLoggerWithoutCommandContext(t *testing.T) {
	if l := chartLogger(context.Background(), &config.Definition{Name: "cpu"}); l == nil {
		t.Fatal("chartLogger() = nil, want the default logger")
	}
}
