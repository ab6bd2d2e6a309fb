package reactive

// Effect is a side effect re-run whenever its tracked inputs change.
type Effect struct {
	n *node
}

// NewEffect creates an effect owned by s. It runs once immediately, or when
// the current batch ends if called inside one.
func NewEffect(s *Scope, fn func(), opts ...Option[struct{}]) *Effect {
	c := newConfig(opts)
	e := &Effect{}
	e.n = s.rt.newNode(kindEffect, c.name)
	e.n.compute = func() bool {
		fn()
		return false
	}
	s.adopt(e.n)
	if e.n.disposed {
		return e
	}

	rt := s.rt
	e.n.state = stateDirty
	rt.queue = append(rt.queue, e.n)
	if rt.depth == 0 {
		rt.flush()
	}
	return e
}

// Dispose stops the effect. It never runs again.
func (e *Effect) Dispose() { e.n.dispose() }
