package reactive

import "reflect"

// Option configures a signal or memo.
type Option[T any] func(*config[T])

type config[T any] struct {
	name  string
	equal func(a, b T) bool
}

// WithName labels the node in graph dumps.
func WithName[T any](name string) Option[T] {
	return func(c *config[T]) { c.name = name }
}

// WithEqual sets the equality used to decide whether a new value differs from
// the previous one. Equal values do not invalidate observers.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(c *config[T]) { c.equal = eq }
}

// Eq is the equality of comparable values, for use with WithEqual.
func Eq[T comparable](a, b T) bool { return a == b }

// Never treats every value as changed.
func Never[T any](T, T) bool { return false }

func newConfig[T any](opts []Option[T]) config[T] {
	c := config[T]{equal: defaultEqual[T]}
	for _, opt := range opts {
		opt(&c)
	}
	if c.equal == nil {
		c.equal = Never[T]
	}
	return c
}

// defaultEqual compares values of comparable dynamic type with == and treats
// everything else (slices, maps, funcs) as always changed.
func defaultEqual[T any](a, b T) (eq bool) {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	t := reflect.TypeOf(av)
	if t != reflect.TypeOf(bv) || !t.Comparable() {
		return false
	}
	// Comparable structs may still hold incomparable values in interface
	// fields, which panics on ==.
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return av == bv
}
