package reactive

// Scope owns reactive nodes and child scopes so they can be torn down
// together.
type Scope struct {
	rt       *Runtime
	parent   *Scope
	nodes    []*node
	children []*Scope
	cleanups []func()
	disposed bool
}

// Runtime returns the runtime the scope belongs to.
func (s *Scope) Runtime() *Runtime { return s.rt }

// Child returns a new scope disposed together with s.
func (s *Scope) Child() *Scope {
	c := &Scope{rt: s.rt, parent: s}
	if s.disposed {
		c.disposed = true
		return c
	}
	s.children = append(s.children, c)
	return c
}

// OnCleanup registers fn to run when the scope is disposed. Cleanups run in
// reverse registration order, after the scope's children are disposed.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool { return s.disposed }

// Dispose detaches every node created in s and its children from the graph.
// Dispose is idempotent.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, c := range s.children {
		c.Dispose()
	}
	for _, n := range s.nodes {
		n.dispose()
	}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.children, s.nodes, s.cleanups = nil, nil, nil
}

func (s *Scope) adopt(n *node) {
	if s.disposed {
		n.dispose()
		return
	}
	s.nodes = append(s.nodes, n)
}
