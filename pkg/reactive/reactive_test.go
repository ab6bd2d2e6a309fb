package reactive

import (
	"strings"
	"testing"
)

func TestMemoIsLazyAndCached(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	runs := 0
	a := NewSignal(s, 2)
	double := NewMemo(s, func() int {
		runs++
		return a.Get() * 2
	})

	if runs != 0 {
		t.Fatalf("memo ran before first read: %d", runs)
	}
	if got := double.Get(); got != 4 {
		t.Errorf("Get() = %d, want 4", got)
	}
	double.Get()
	if runs != 1 {
		t.Errorf("runs = %d, want 1 (cached)", runs)
	}

	a.Set(5)
	if runs != 1 {
		t.Errorf("memo recomputed eagerly: runs = %d", runs)
	}
	if got := double.Get(); got != 10 {
		t.Errorf("Get() = %d, want 10", got)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestBatchRecomputesOnce(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	a := NewSignal(s, 1)
	b := NewSignal(s, 2)
	memoRuns := 0
	sum := NewMemo(s, func() int {
		memoRuns++
		return a.Get() + b.Get()
	})
	var seen []int
	NewEffect(s, func() { seen = append(seen, sum.Get()) })

	rt.Batch(func() {
		a.Set(10)
		b.Set(20)
		if len(seen) != 1 {
			t.Errorf("effect ran inside batch: %v", seen)
		}
	})

	if memoRuns != 2 {
		t.Errorf("memo runs = %d, want 2 (initial + one for the batch)", memoRuns)
	}
	if len(seen) != 2 || seen[1] != 30 {
		t.Errorf("effect values = %v, want [3 30]", seen)
	}
}

func TestEqualValuesStopPropagation(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	n := NewSignal(s, 3)
	parity := NewMemo(s, func() bool { return n.Get()%2 == 0 })
	downstream := 0
	label := NewMemo(s, func() string {
		downstream++
		if parity.Get() {
			return "even"
		}
		return "odd"
	})

	if label.Get() != "odd" {
		t.Fatal("want odd")
	}
	n.Set(5)
	if label.Get() != "odd" {
		t.Fatal("want odd")
	}
	if downstream != 1 {
		t.Errorf("downstream runs = %d, want 1", downstream)
	}
	n.Set(6)
	if label.Get() != "even" || downstream != 2 {
		t.Errorf("label = %q after %d runs, want even after 2", label.Get(), downstream)
	}
}

func TestSetSameValueIsNoop(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	sig := NewSignal(s, "a")
	runs := 0
	NewEffect(s, func() {
		sig.Get()
		runs++
	})
	sig.Set("a")
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	sig.Set("b")
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestWithEqualOption(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	sig := NewSignal(s, []int{1}, WithEqual(func(a, b []int) bool { return len(a) == len(b) }))
	runs := 0
	NewEffect(s, func() {
		sig.Get()
		runs++
	})
	sig.Set([]int{2})
	if runs != 1 {
		t.Errorf("equal-length slice should not propagate, runs = %d", runs)
	}
	sig.Set([]int{1, 2})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestSlicesAlwaysPropagate(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	sig := NewSignal(s, []float64{1})
	runs := 0
	NewEffect(s, func() {
		sig.Get()
		runs++
	})
	sig.Set([]float64{1})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestDynamicDependencies(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	useA := NewSignal(s, true)
	a := NewSignal(s, "a")
	b := NewSignal(s, "b")
	runs := 0
	pick := NewMemo(s, func() string {
		runs++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	if pick.Get() != "a" {
		t.Fatal("want a")
	}
	b.Set("B")
	pick.Get()
	if runs != 1 {
		t.Errorf("unread signal triggered recompute, runs = %d", runs)
	}
	useA.Set(false)
	if pick.Get() != "B" {
		t.Errorf("pick = %q, want B", pick.Peek())
	}
	a.Set("A")
	pick.Get()
	if runs != 2 {
		t.Errorf("dropped dependency triggered recompute, runs = %d", runs)
	}
}

func TestUntrack(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	a := NewSignal(s, 1)
	b := NewSignal(s, 1)
	runs := 0
	NewEffect(s, func() {
		a.Get()
		rt.Untrack(func() { b.Get() })
		b.Peek()
		runs++
	})
	b.Set(2)
	if runs != 1 {
		t.Errorf("untracked read triggered effect, runs = %d", runs)
	}
	a.Set(2)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestDisposeStopsEffects(t *testing.T) {
	rt := NewRuntime()
	root := rt.NewScope()
	chart := root.Child()

	sig := NewSignal(root, 0)
	runs := 0
	cleaned := false
	NewEffect(chart, func() {
		sig.Get()
		runs++
	})
	chart.OnCleanup(func() { cleaned = true })

	sig.Set(1)
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}

	root.Dispose()
	if !chart.Disposed() || !cleaned {
		t.Error("child scope not disposed with parent")
	}
	sig.Set(2)
	sig.Set(3)
	if runs != 2 {
		t.Errorf("disposed effect ran, runs = %d", runs)
	}
	if rt.Size() != 0 {
		t.Errorf("runtime still holds %d nodes", rt.Size())
	}
}

func TestDisposedMemoKeepsLastValue(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	sig := NewSignal(s, 1)
	m := NewMemo(s, func() int { return sig.Get() + 1 })
	if m.Get() != 2 {
		t.Fatal("want 2")
	}
	s.Dispose()
	sig.Set(10)
	if m.Get() != 2 {
		t.Errorf("disposed memo = %d, want 2", m.Get())
	}
}

func TestEffectWritingSignal(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	in := NewSignal(s, 1)
	out := NewSignal(s, 0)
	NewEffect(s, func() { out.Set(in.Get() * 10) })
	var seen []int
	NewEffect(s, func() { seen = append(seen, out.Get()) })

	in.Set(2)
	if out.Peek() != 20 {
		t.Errorf("out = %d, want 20", out.Peek())
	}
	if len(seen) != 2 || seen[1] != 20 {
		t.Errorf("seen = %v, want [10 20]", seen)
	}
}

func TestCycleDetected(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	var m *Memo[int]
	m = NewMemo(s, func() int { return m.Get() + 1 })

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "cycle") {
			t.Errorf("recover() = %v, want cycle panic", r)
		}
	}()
	m.Get()
}

func TestMapAndStatic(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	var r Reader[float64] = Of(4.0)
	half := Map(s, r, func(v float64) float64 { return v / 2 })
	if half.Get() != 2 {
		t.Errorf("Map = %v, want 2", half.Get())
	}
	if r.Peek() != 4 {
		t.Errorf("Static.Peek = %v", r.Peek())
	}
}

func TestGraphToDOT(t *testing.T) {
	rt := NewRuntime()
	s := rt.NewScope()

	w := NewSignal(s, 800.0, WithName[float64]("width"))
	h := NewMemo(s, func() float64 { return w.Get() / 2 }, WithName[float64]("height"))
	h.Get()

	g := rt.Graph()
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("graph = %+v, want 2 nodes and 1 edge", g)
	}
	if g.Edges[0].From != g.Nodes[0].ID || g.Edges[0].To != g.Nodes[1].ID {
		t.Errorf("edge = %+v, want width -> height", g.Edges[0])
	}

	dot := g.ToDOT()
	for _, want := range []string{"digraph Reactive", `label="width"`, "shape=ellipse", "n1 -> n2"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}
