// Package pkg provides the core libraries for Chartistry declarative line
// charts.
//
// # Overview
//
// A chart is a plotting area surrounded by edge components (titles, tick
// labels, legends) stacked outward on each side, with overlays (grid lines,
// inset legends, axis markers) drawn inside it. Every derived value, from
// the outer size down to the projected line points, is a node in a
// fine-grained reactive graph, so a resize or a toggled line recomputes only
// what depends on it.
//
// The pkg directory is organised into three areas:
//
//  1. Layout: [geom], [aspect], [fonts], [ticks], [layout], [projection],
//     [series], [scene], [chart] and the [reactive] runtime they run on
//  2. Data: [source] loaders and the TOML chart definitions in [config]
//  3. Delivery: [pipeline] (load → layout → render), [cache], [server],
//     [observability], [httputil] and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	chart.toml ──► [config] Definition
//	                   │
//	 CSV/JSON/XLSX/MongoDB/Prometheus ──► [source] Table
//	                   │
//	             [chart] mounted in a [reactive] Runtime
//	    aspect ► layout ► ticks ► projection ► series ► scene
//	                   │
//	          SVG / layout JSON / DOT / XLSX
//
// # Quick Start
//
// Mount a chart directly:
//
//	rt := reactive.NewRuntime()
//	scope := rt.NewScope()
//	xTicks := layout.NewTickLabels[float64]()
//	c := chart.New(scope, chart.Options[point, float64, float64]{
//	    AspectRatio: reactive.Of(aspect.EnvWidth(2)),
//	    Bottom:      []layout.EdgeComponent{xTicks},
//	    Inner:       []layout.InnerComponent{layout.XGridLine(xTicks)},
//	    Series:      lines,
//	    Data:        reactive.Of(points),
//	})
//	c.Observe(800, 600)
//	err := c.WriteSVG(os.Stdout)
//
// Or run a definition through the pipeline:
//
//	def, _ := config.Load("charts/cpu.toml")
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition: def,
//	    Width:      1200,
//	    Formats:    []string{"svg"},
//	})
//
// # Packages
//
//   - [geom]: bounds, edges, anchors and padding in pixel space
//   - [aspect]: outer dimensions from an aspect-ratio policy
//   - [fonts]: font metrics used to size text
//   - [ticks]: tick generation for numeric and time axes
//   - [layout]: edge composition and inner overlays
//   - [projection]: data-to-pixel mapping of the plotting area
//   - [series]: line definitions, data ranges and legend entries
//   - [scene]: the drawing tree and its SVG writer
//   - [chart]: the chart orchestrator
//   - [reactive]: signals, memos, effects and scopes
//   - [source]: data loaders producing aligned tables
//   - [config]: TOML chart definitions
//   - [pipeline]: cached load → layout → render
//   - [cache]: file, Redis and no-op caches
//   - [server]: the HTTP render server
//   - [observability]: pipeline, cache and HTTP hooks with Prometheus metrics
//   - [httputil]: retrying, instrumented HTTP transport
//   - [errors]: coded errors and input validation
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/geom
// [aspect]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/aspect
// [fonts]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/fonts
// [ticks]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/ticks
// [layout]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/layout
// [projection]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/projection
// [series]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/series
// [scene]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/scene
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/chart
// [reactive]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/reactive
// [source]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/source
// [config]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartistry/pkg/errors
package pkg
