package reactive

// Memo is a cached derived value. It recomputes lazily, on read, when at
// least one of its sources changed since the last run.
type Memo[T any] struct {
	n     *node
	value T
	fn    func() T
	equal func(a, b T) bool
	init  bool
}

// NewMemo creates a memo owned by s. fn runs on first read.
func NewMemo[T any](s *Scope, fn func() T, opts ...Option[T]) *Memo[T] {
	c := newConfig(opts)
	m := &Memo[T]{fn: fn, equal: c.equal}
	m.n = s.rt.newNode(kindMemo, c.name)
	m.n.state = stateDirty
	m.n.compute = m.compute
	s.adopt(m.n)
	return m
}

// Map derives a memo from a single reader.
func Map[T, U any](s *Scope, r Reader[T], fn func(T) U, opts ...Option[U]) *Memo[U] {
	return NewMemo(s, func() U { return fn(r.Get()) }, opts...)
}

func (m *Memo[T]) compute() bool {
	v := m.fn()
	if m.init && m.equal(m.value, v) {
		return false
	}
	m.value, m.init = v, true
	return true
}

// Get brings the memo up to date, tracks the read and returns the value.
func (m *Memo[T]) Get() T {
	m.n.rt.track(m.n)
	m.n.updateIfNecessary()
	return m.value
}

// Peek brings the memo up to date without tracking the read.
func (m *Memo[T]) Peek() T {
	m.n.updateIfNecessary()
	return m.value
}
