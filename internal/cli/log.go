package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

// newLogger writes timestamped records to w at level and above.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// renderProgress accumulates per-chart outcomes of a render run. Charts may
// finish on any goroutine.
type renderProgress struct {
	logger  *log.Logger
	formats string
	start   time.Time

	mu     sync.Mutex
	charts int
	rows   int
}

func newRenderProgress(l *log.Logger, formats []string) *renderProgress {
	return &renderProgress{
		logger:  l,
		formats: strings.Join(formats, ","),
		start:   time.Now(),
	}
}

// chart records one rendered chart and logs its stage timings at debug level.
func (p *renderProgress) chart(def *config.Definition, res *pipeline.Result) {
	p.mu.Lock()
	p.charts++
	p.rows += res.Stats.Rows
	p.mu.Unlock()

	p.logger.Debug("chart rendered",
		"chart", def.Name,
		"rows", res.Stats.Rows,
		"load", res.Stats.LoadTime.Round(time.Millisecond),
		"layout", res.Stats.LayoutTime.Round(time.Millisecond),
		"load_hit", res.CacheInfo.LoadHit,
		"render_hit", res.CacheInfo.RenderHit,
	)
}

// done logs the run summary.
func (p *renderProgress) done() {
	p.mu.Lock()
	charts, rows := p.charts, p.rows
	p.mu.Unlock()

	p.logger.Info(fmt.Sprintf("Rendered %d chart(s)", charts),
		"format", p.formats,
		"rows", rows,
		"elapsed", time.Since(p.start).Round(time.Millisecond),
	)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// chartLogger returns the command logger from ctx scoped to def. Commands
// run outside the root command fall back to log.Default().
func chartLogger(ctx context.Context, def *config.Definition) *log.Logger {
	l, ok := ctx.Value(ctxKey{}).(*log.Logger)
	if !ok {
		l = log.Default()
	}
	return l.With("chart", def.Name)
}
