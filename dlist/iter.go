package dlist

import (
	"iter"

	"github.com/valyakuttan/rust-notes/maybe"
)

// IntoIter is a consuming, double-ended iterator: every step pops an element
// off the underlying list, from the front (Next) or from the back (NextBack).
//
// If a pop fails, iteration stops and Err reports the failure.
type IntoIter[T any] struct {
	l   *List[T]
	err error
}

// IntoIter returns a consuming iterator which drains l.
func (l *List[T]) IntoIter() *IntoIter[T] {
	return &IntoIter[T]{l: l}
}

// Next pops the front element.
func (it *IntoIter[T]) Next() (T, bool) {
	return it.pop(it.l.PopFront)
}

// NextBack pops the back element.
func (it *IntoIter[T]) NextBack() (T, bool) {
	return it.pop(it.l.PopBack)
}

func (it *IntoIter[T]) pop(popper func() (maybe.Maybe[T], error)) (T, bool) {
	var zero T
	if it.err != nil {
		return zero, false
	}
	m, err := popper()
	if err != nil {
		it.err = err
		return zero, false
	}
	return m.Get()
}

// All returns the remaining elements front to back as a sequence.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns the remaining elements back to front as a sequence.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := it.NextBack(); ok; v, ok = it.NextBack() {
			if !yield(v) {
				return
			}
		}
	}
}

// Err returns the error which stopped iteration, if any.
func (it *IntoIter[T]) Err() error {
	return it.err
}
