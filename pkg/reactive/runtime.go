package reactive

import (
	"fmt"
	"slices"
)

type kind uint8

const (
	kindSignal kind = iota
	kindMemo
	kindEffect
)

func (k kind) String() string {
	switch k {
	case kindSignal:
		return "signal"
	case kindMemo:
		return "memo"
	default:
		return "effect"
	}
}

type state uint8

const (
	stateClean state = iota
	stateCheck
	stateDirty
)

func (s state) String() string {
	switch s {
	case stateClean:
		return "clean"
	case stateCheck:
		return "check"
	default:
		return "dirty"
	}
}

// node is the untyped part shared by signals, memos and effects.
type node struct {
	rt        *Runtime
	id        int
	name      string
	kind      kind
	state     state
	sources   []*node
	observers []*node
	disposed  bool
	running   bool

	// compute reruns the node and reports whether its value changed.
	compute func() bool
}

// Runtime owns a reactive graph.
type Runtime struct {
	nodes    map[int]*node
	nextID   int
	observer *node
	depth    int
	queue    []*node
	flushing bool
}

// NewRuntime returns an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{nodes: make(map[int]*node)}
}

// NewScope returns a root scope owned by the runtime.
func (rt *Runtime) NewScope() *Scope {
	return &Scope{rt: rt}
}

// Batch runs fn with effect execution deferred until the outermost batch
// returns. Memos read inside fn still see the latest values.
func (rt *Runtime) Batch(fn func()) {
	rt.depth++
	defer func() {
		rt.depth--
		if rt.depth == 0 {
			rt.flush()
		}
	}()
	fn()
}

// Untrack runs fn without registering the values it reads as dependencies of
// the currently running memo or effect.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.observer
	rt.observer = nil
	defer func() { rt.observer = prev }()
	fn()
}

// Size returns the number of live nodes.
func (rt *Runtime) Size() int { return len(rt.nodes) }

func (rt *Runtime) newNode(k kind, name string) *node {
	rt.nextID++
	n := &node{rt: rt, id: rt.nextID, name: name, kind: k}
	if n.name == "" {
		n.name = fmt.Sprintf("%s%d", k, n.id)
	}
	rt.nodes[n.id] = n
	return n
}

// track records n as a source of the running observer.
func (rt *Runtime) track(n *node) {
	obs := rt.observer
	if obs == nil || obs.disposed || n.disposed {
		return
	}
	if slices.Contains(obs.sources, n) {
		return
	}
	obs.sources = append(obs.sources, n)
	n.observers = append(n.observers, obs)
}

// flush runs queued effects until the queue drains. Effects that write
// signals may enqueue further effects; those run in the same flush.
func (rt *Runtime) flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	for len(rt.queue) > 0 {
		n := rt.queue[0]
		rt.queue = rt.queue[1:]
		if n.disposed {
			continue
		}
		n.updateIfNecessary()
	}
}

// stale pushes s into n and downstream nodes. Only direct observers of a
// changed node become dirty; everything further away only needs a check.
func (n *node) stale(s state) {
	if n.disposed || n.state >= s {
		return
	}
	if n.state == stateClean && n.kind == kindEffect {
		n.rt.queue = append(n.rt.queue, n)
	}
	n.state = s
	for _, obs := range n.observers {
		obs.stale(stateCheck)
	}
}

// updateIfNecessary brings n up to date, recomputing only when a source
// actually changed.
func (n *node) updateIfNecessary() {
	if n.disposed {
		return
	}
	if n.state == stateCheck {
		for _, src := range slices.Clone(n.sources) {
			src.updateIfNecessary()
			if n.state == stateDirty {
				break
			}
		}
	}
	if n.state == stateDirty {
		n.update()
	}
	n.state = stateClean
}

// update reruns n with fresh dependency tracking.
func (n *node) update() {
	if n.compute == nil {
		return
	}
	if n.running {
		panic(fmt.Sprintf("reactive: cycle detected at %s %q", n.kind, n.name))
	}

	n.unlinkSources()

	rt := n.rt
	prev := rt.observer
	rt.observer = n
	n.running = true
	changed := func() bool {
		defer func() {
			n.running = false
			rt.observer = prev
		}()
		return n.compute()
	}()

	if changed {
		for _, obs := range n.observers {
			obs.state = stateDirty
		}
	}
}

func (n *node) unlinkSources() {
	for _, src := range n.sources {
		src.observers = slices.DeleteFunc(src.observers, func(o *node) bool { return o == n })
	}
	n.sources = nil
}

func (n *node) dispose() {
	if n.disposed {
		return
	}
	n.unlinkSources()
	for _, obs := range n.observers {
		obs.sources = slices.DeleteFunc(obs.sources, func(s *node) bool { return s == n })
	}
	n.observers = nil
	n.disposed = true
	n.state = stateClean
	delete(n.rt.nodes, n.id)
}
