package reactive

// Reader is a reactive value. Get registers a dependency when called inside a
// memo or effect; Peek never does.
type Reader[T any] interface {
	Get() T
	Peek() T
}

// Static is a constant Reader. It never changes and never registers a
// dependency.
type Static[T any] struct {
	Value T
}

// Of returns a Static reader holding v.
func Of[T any](v T) Static[T] { return Static[T]{Value: v} }

func (s Static[T]) Get() T  { return s.Value }
func (s Static[T]) Peek() T { return s.Value }

// Signal is a writable reactive value.
type Signal[T any] struct {
	n     *node
	value T
	equal func(a, b T) bool
}

// NewSignal creates a signal owned by s.
func NewSignal[T any](s *Scope, value T, opts ...Option[T]) *Signal[T] {
	c := newConfig(opts)
	sig := &Signal[T]{value: value, equal: c.equal}
	sig.n = s.rt.newNode(kindSignal, c.name)
	s.adopt(sig.n)
	return sig
}

// Get returns the current value and tracks the read.
func (s *Signal[T]) Get() T {
	s.n.rt.track(s.n)
	return s.value
}

// Peek returns the current value without tracking.
func (s *Signal[T]) Peek() T { return s.value }

// Set stores v. Observers are invalidated unless v equals the current value.
// Outside a batch, effects run before Set returns.
func (s *Signal[T]) Set(v T) {
	if s.equal(s.value, v) {
		return
	}
	s.value = v
	if s.n.disposed {
		return
	}
	rt := s.n.rt
	for _, obs := range s.n.observers {
		obs.stale(stateDirty)
	}
	if rt.depth == 0 {
		rt.flush()
	}
}

// Update sets the signal to fn applied to its current value.
func (s *Signal[T]) Update(fn func(T) T) { s.Set(fn(s.value)) }
