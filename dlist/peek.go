package dlist

import (
	"fmt"

	"github.com/valyakuttan/rust-notes/arena"
	"github.com/valyakuttan/rust-notes/maybe"
)

// Ref is a shared borrow of an element. Release it when done; while it is
// outstanding, operations relinking the node fail.
type Ref[T any] struct {
	r arena.Ref[node[T]]
}

// Value returns the borrowed element.
func (r Ref[T]) Value() T {
	return r.r.Value().value
}

// Release ends the borrow.
func (r Ref[T]) Release() {
	r.r.Release()
}

// RefMut is an exclusive borrow of an element, through which it may be changed
// in place while it stays linked.
type RefMut[T any] struct {
	r arena.RefMut[node[T]]
}

// Value returns a pointer to the borrowed element, valid until Release.
func (r RefMut[T]) Value() *T {
	return &r.r.Value().value
}

// Set replaces the borrowed element.
func (r RefMut[T]) Set(value T) {
	r.r.Value().value = value
}

// Release ends the borrow.
func (r RefMut[T]) Release() {
	r.r.Release()
}

// PeekFront borrows the front element, or returns Nothing for an empty list.
func (l *List[T]) PeekFront() (maybe.Maybe[Ref[T]], error) {
	return l.peek(l.head)
}

// PeekBack borrows the back element, or returns Nothing for an empty list.
func (l *List[T]) PeekBack() (maybe.Maybe[Ref[T]], error) {
	return l.peek(l.tail)
}

// PeekFrontMut exclusively borrows the front element.
func (l *List[T]) PeekFrontMut() (maybe.Maybe[RefMut[T]], error) {
	return l.peekMut(l.head)
}

// PeekBackMut exclusively borrows the back element.
func (l *List[T]) PeekBackMut() (maybe.Maybe[RefMut[T]], error) {
	return l.peekMut(l.tail)
}

func (l *List[T]) peek(h arena.Handle) (maybe.Maybe[Ref[T]], error) {
	if h.IsNil() {
		return maybe.Nothing[Ref[T]](), nil
	}
	r, err := l.nodes.Borrow(h)
	if err != nil {
		return maybe.Nothing[Ref[T]](), fmt.Errorf("peek: %w", err)
	}
	return maybe.Just(Ref[T]{r: r}), nil
}

func (l *List[T]) peekMut(h arena.Handle) (maybe.Maybe[RefMut[T]], error) {
	if h.IsNil() {
		return maybe.Nothing[RefMut[T]](), nil
	}
	r, err := l.nodes.BorrowMut(h)
	if err != nil {
		return maybe.Nothing[RefMut[T]](), fmt.Errorf("peek: %w", err)
	}
	return maybe.Just(RefMut[T]{r: r}), nil
}
