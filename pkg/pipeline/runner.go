package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/observability"
	"github.com/matzehuels/chartistry/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Every run mounts
// its chart in a fresh reactive runtime, so multiple goroutines can share
// one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses a DefaultKeyer and a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	def := opts.Definition
	logger := r.Logger.With("chart", def.Name)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	tbl, hit, err := r.LoadWithCacheInfo(ctx, def, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Table = tbl
	result.DataHash = tableHash(tbl)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows = tbl.Len()
	result.Stats.Columns = len(tbl.Columns)
	result.CacheInfo.LoadHit = hit

	logger.Info("loaded data",
		"source", def.Source.Kind,
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"cached", hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	m, err := r.Layout(ctx, def, tbl, result.DataHash, opts)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	result.Layout, _ = m.Chart.Layout()
	result.Width, result.Height, _ = m.Chart.Size()
	result.Lines = m.Chart.Entries()
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"size", [2]float64{result.Width, result.Height},
		"inner", result.Layout.Inner,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads def's data source and reports whether the table
// came from the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, def *config.Definition, refresh bool) (*source.Table, bool, error) {
	loader, err := source.Open(def.Source, def.Dir)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.DataKey(cache.DataKeyOpts{Kind: loader.Kind(), Source: loader.Describe()})

	if !refresh {
		if data, ok := r.get(ctx, "data", key); ok {
			var tbl source.Table
			if err := json.Unmarshal(data, &tbl); err == nil {
				return &tbl, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, loader.Kind(), def.Name)
	start := time.Now()
	tbl, err := loader.Load(ctx)
	rows := 0
	if tbl != nil {
		rows = tbl.Len()
	}
	hooks.OnLoadComplete(ctx, loader.Kind(), def.Name, rows, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(tbl); err == nil {
		r.set(ctx, "data", key, data, cache.TTLData)
	}
	return tbl, false, nil
}

// Load is LoadWithCacheInfo without the cache hit info.
func (r *Runner) Load(ctx context.Context, def *config.Definition) (*source.Table, error) {
	tbl, _, err := r.LoadWithCacheInfo(ctx, def, false)
	return tbl, err
}

// Layout mounts def plotting tbl at the options' container size.
func (r *Runner) Layout(ctx context.Context, def *config.Definition, tbl *source.Table, dataHash string, opts Options) (*Mounted, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, def.Name, opts.Width, opts.Height)
	start := time.Now()
	m, err := Mount(def, tbl, dataHash, opts.Width, opts.Height, opts.Logger)
	hooks.OnLayoutComplete(ctx, def.Name, time.Since(start), err)
	return m, err
}

// RenderWithCacheInfo serialises m in the options' formats and reports
// whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *Mounted, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	keys := make(map[string]string, len(opts.Formats))
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(m.Definition.Hash, opts.ArtifactKeyOpts(format, m.DataHash))
		if data, ok := r.get(ctx, "artifact", keys[format]); ok {
			artifacts[format] = data
		}
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(m, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, "artifact", keys[format], data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// tableHash returns the content hash of t.
func tableHash(t *source.Table) string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
