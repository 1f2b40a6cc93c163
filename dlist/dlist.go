package dlist

import (
	"errors"
	"fmt"

	"github.com/valyakuttan/rust-notes/arena"
	"github.com/valyakuttan/rust-notes/maybe"
)

// ErrBrokenLink is reported by CheckLinks if the links of a list are inconsistent.
var ErrBrokenLink = errors.New("broken link")

type node[T any] struct {
	value T
	prev  arena.Handle
	next  arena.Handle
}

// List is a doubly-linked list of values of type T. The zero value is an empty
// list ready to use. Lists are not safe for concurrent use.
type List[T any] struct {
	nodes  *arena.Arena[node[T]]
	head   arena.Handle
	tail   arena.Handle
	length int
}

// New creates an empty list. Options are handed to the node arena.
func New[T any](opts ...arena.Option) *List[T] {
	return &List[T]{nodes: arena.New[node[T]]("dlist", opts...)}
}

func (l *List[T]) store() *arena.Arena[node[T]] {
	if l.nodes == nil {
		l.nodes = arena.New[node[T]]("dlist")
	}
	return l.nodes
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.length
}

// IsEmpty is true for a list without elements.
func (l *List[T]) IsEmpty() bool {
	return l.head.IsNil()
}

// Live returns the number of nodes currently allocated for this list.
func (l *List[T]) Live() int {
	return l.nodes.Live()
}

// --- Push ------------------------------------------------------------------

// PushFront inserts value at the front. It fails if the current front node is
// borrowed, as its backward link has to change.
func (l *List[T]) PushFront(value T) error {
	nodes := l.store()
	if l.head.IsNil() {
		l.pushFirst(value)
		return nil
	}
	old, err := nodes.BorrowMut(l.head)
	if err != nil {
		return fmt.Errorf("push front: %w", err)
	}
	defer old.Release()
	// the new node takes over the head entry's reference to the old front
	h := nodes.Alloc(node[T]{value: value, next: l.head})
	l.retain(h)
	old.Value().prev = h
	l.head = h
	l.length++
	tracer().Debugf("dlist: pushed %v at front", h)
	return nil
}

// PushBack inserts value at the back. It fails if the current back node is
// borrowed, as its forward link has to change.
func (l *List[T]) PushBack(value T) error {
	nodes := l.store()
	if l.tail.IsNil() {
		l.pushFirst(value)
		return nil
	}
	old, err := nodes.BorrowMut(l.tail)
	if err != nil {
		return fmt.Errorf("push back: %w", err)
	}
	defer old.Release()
	h := nodes.Alloc(node[T]{value: value, prev: l.tail})
	l.retain(h)
	old.Value().next = h
	l.tail = h
	l.length++
	tracer().Debugf("dlist: pushed %v at back", h)
	return nil
}

func (l *List[T]) pushFirst(value T) {
	h := l.nodes.Alloc(node[T]{value: value})
	l.retain(h) // head and tail entry both own the only node
	l.head, l.tail = h, h
	l.length = 1
	tracer().Debugf("dlist: pushed %v into empty list", h)
}

func (l *List[T]) retain(h arena.Handle) {
	err := l.nodes.Retain(h)
	assertThat(err == nil, "cannot retain fresh node %v: %v", h, err)
}

// --- Pop -------------------------------------------------------------------

// PopFront removes the front element and returns it, or Nothing if the list
// is empty. It fails with arena.ErrBorrowConflict if the front node or its
// successor is borrowed.
func (l *List[T]) PopFront() (maybe.Maybe[T], error) {
	if l.head.IsNil() {
		return maybe.Nothing[T](), nil
	}
	h := l.head
	first, err := l.nodes.BorrowMut(h)
	if err != nil {
		return maybe.Nothing[T](), fmt.Errorf("pop front: %w", err)
	}
	next := first.Value().next
	if next.IsNil() {
		first.Release()
		l.head, l.tail = arena.Handle{}, arena.Handle{}
	} else {
		succ, err := l.nodes.BorrowMut(next)
		if err != nil {
			first.Release()
			return maybe.Nothing[T](), fmt.Errorf("pop front: %w", err)
		}
		succ.Value().prev = arena.Handle{}
		first.Value().next = arena.Handle{} // its reference to next moves to the head entry
		succ.Release()
		first.Release()
		l.head = next
	}
	l.length--
	return maybe.Just(l.free(h)), nil
}

// PopBack removes the back element and returns it, or Nothing if the list
// is empty. It fails with arena.ErrBorrowConflict if the back node or its
// predecessor is borrowed.
func (l *List[T]) PopBack() (maybe.Maybe[T], error) {
	if l.tail.IsNil() {
		return maybe.Nothing[T](), nil
	}
	h := l.tail
	last, err := l.nodes.BorrowMut(h)
	if err != nil {
		return maybe.Nothing[T](), fmt.Errorf("pop back: %w", err)
	}
	prev := last.Value().prev
	if prev.IsNil() {
		last.Release()
		l.head, l.tail = arena.Handle{}, arena.Handle{}
	} else {
		pred, err := l.nodes.BorrowMut(prev)
		if err != nil {
			last.Release()
			return maybe.Nothing[T](), fmt.Errorf("pop back: %w", err)
		}
		pred.Value().next = arena.Handle{}
		last.Value().prev = arena.Handle{}
		pred.Release()
		last.Release()
		l.tail = prev
	}
	l.length--
	return maybe.Just(l.free(h)), nil
}

// free drops the two references a detached node has left: one from each side.
func (l *List[T]) free(h arena.Handle) T {
	_, freed, err := l.nodes.Release(h)
	assertThat(err == nil && !freed, "detached node %v lost a reference early: %v", h, err)
	n, freed, err := l.nodes.Release(h)
	assertThat(err == nil && freed, "detached node %v still referenced: %v", h, err)
	tracer().Debugf("dlist: freed %v, %d nodes left", h, l.length)
	return n.value
}

// Drop empties the list by repeatedly popping the front. It fails if a node
// is still borrowed; the nodes not yet popped remain in the list.
func (l *List[T]) Drop() error {
	for !l.head.IsNil() {
		if _, err := l.PopFront(); err != nil {
			return fmt.Errorf("drop: %w", err)
		}
	}
	return nil
}

// Values returns a snapshot of all elements from front to back. It fails if a
// node is exclusively borrowed.
func (l *List[T]) Values() ([]T, error) {
	values := make([]T, 0, l.length)
	for h := l.head; !h.IsNil(); {
		n, err := l.nodes.Get(h)
		if err != nil {
			return nil, err
		}
		values = append(values, n.value)
		h = n.next
	}
	return values, nil
}

// CheckLinks verifies the structural invariants of the list: forward and
// backward links mirror each other, head and tail are nil exactly for the
// empty list, and every node is owned by exactly two references.
func (l *List[T]) CheckLinks() error {
	if l.head.IsNil() != l.tail.IsNil() {
		return fmt.Errorf("%w: head=%v, tail=%v", ErrBrokenLink, l.head, l.tail)
	}
	var prev arena.Handle
	count := 0
	for h := l.head; !h.IsNil(); count++ {
		if count >= l.length {
			return fmt.Errorf("%w: chain longer than %d nodes", ErrBrokenLink, l.length)
		}
		n, err := l.nodes.Get(h)
		if err != nil {
			return err
		}
		if n.prev != prev {
			return fmt.Errorf("%w: node %v links back to %v, expected %v", ErrBrokenLink, h, n.prev, prev)
		}
		if refs := l.nodes.Refs(h); refs != 2 {
			return fmt.Errorf("%w: node %v has %d owners", ErrBrokenLink, h, refs)
		}
		prev, h = h, n.next
	}
	if prev != l.tail {
		return fmt.Errorf("%w: chain ends at %v, tail is %v", ErrBrokenLink, prev, l.tail)
	}
	if count != l.length {
		return fmt.Errorf("%w: chain has %d nodes, length is %d", ErrBrokenLink, count, l.length)
	}
	return nil
}
