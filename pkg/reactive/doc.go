// Package reactive provides the small fine-grained reactive graph that every
// derived chart value lives in.
//
// # Overview
//
// A [Runtime] owns a graph of three node kinds:
//
//   - [Signal]: a writable value. Setting it invalidates its observers.
//   - [Memo]: a cached derivation. It recomputes lazily on read and only when
//     one of the values it read during its last run has changed.
//   - [Effect]: a side effect. It re-runs after its inputs change, once the
//     outermost [Runtime.Batch] has finished.
//
// Dependencies are tracked automatically: whatever a memo or effect reads
// through [Reader.Get] during its run becomes one of its sources. Reads through
// [Reader.Peek] or inside [Runtime.Untrack] are not tracked.
//
// # Propagation
//
// Writes push a colour through the graph and reads pull values back. A set
// signal marks its direct observers dirty and everything further downstream
// as "check". Reading a memo in the check state first brings its sources up to
// date and recomputes only when one of them actually changed, so a memo whose
// two upstream signals change inside one batch recomputes exactly once and a
// memo whose recomputed value is equal to the previous one (see [WithEqual])
// stops propagation.
//
// # Ownership
//
// Every node belongs to a [Scope]. [Scope.Dispose] detaches all nodes created
// in the scope and its children from the graph: disposed effects never run
// again and disposed memos keep returning their last value.
//
//	rt := reactive.NewRuntime()
//	s := rt.NewScope()
//	width := reactive.NewSignal(s, 800.0)
//	half := reactive.NewMemo(s, func() float64 { return width.Get() / 2 })
//	reactive.NewEffect(s, func() { fmt.Println(half.Get()) })
//	width.Set(600) // prints 300
//	s.Dispose()
//
// # Debugging
//
// [Runtime.Graph] snapshots the live graph; [Graph.ToDOT] and [RenderSVG]
// turn it into Graphviz output.
//
// # Concurrency
//
// A Runtime is not safe for concurrent use. All nodes of one runtime must be
// created, read and written from a single goroutine; independent charts use
// independent runtimes.
package reactive
