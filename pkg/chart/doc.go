// Package chart wires the layout engine into a line chart.
//
// A [Chart] owns a reactive scope holding the whole pipeline:
//
//	container size -> aspect ratio -> edge composition -> projection -> scene
//
// Nothing is drawn until the container has been measured with
// [Chart.Observe]; until then the chart renders a placeholder. After the first
// measurement every resize, data change or option change flows through the
// dependency graph and re-renders the chart once per batch.
//
// # Lifecycle
//
//	Unmeasured -> Measured -> LaidOut -> Rendering
//
// [Chart.Unmount] disposes the chart's scope from any state. Registered
// render callbacks never fire after it returns.
//
// # Example
//
//	rt := reactive.NewRuntime()
//	data := reactive.NewSignal(rt.NewScope(), samples)
//	c := chart.New(rt.NewScope(), chart.Options[Sample, float64, float64]{
//	    AspectRatio: reactive.Of(aspect.EnvWidth(2)),
//	    Series:      series.New[Sample, float64, float64](Sample.At).WithLine("load", Sample.Load),
//	    Data:        data,
//	    Left:        []layout.EdgeComponent{layout.AlignedFloats()},
//	    Bottom:      []layout.EdgeComponent{layout.AlignedFloats()},
//	})
//	c.Observe(800, 600)
//	c.WriteSVG(os.Stdout)
package chart
