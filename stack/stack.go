package stack

import (
	"fmt"
	"iter"
	"strings"

	fp "github.com/valyakuttan/rust-notes"
	"github.com/valyakuttan/rust-notes/arena"
	"github.com/valyakuttan/rust-notes/maybe"
)

type node[T any] struct {
	value T
	next  arena.Handle // sole owner of the next node
}

// List is a stack of values of type T. The zero value is an empty list ready
// to use. Lists are not safe for concurrent use.
type List[T any] struct {
	nodes  *arena.Arena[node[T]]
	head   arena.Handle
	length int
}

// New creates an empty list. Options are handed to the node arena.
func New[T any](opts ...arena.Option) *List[T] {
	return &List[T]{nodes: arena.New[node[T]]("stack", opts...)}
}

func (l *List[T]) store() *arena.Arena[node[T]] {
	if l.nodes == nil {
		l.nodes = arena.New[node[T]]("stack")
	}
	return l.nodes
}

// Len returns the number of values on the stack.
func (l *List[T]) Len() int {
	return l.length
}

// IsEmpty is true if there is nothing to pop.
func (l *List[T]) IsEmpty() bool {
	return l.head.IsNil()
}

// Live returns the number of nodes currently allocated for this list.
func (l *List[T]) Live() int {
	return l.nodes.Live()
}

// Push puts a value on top of the stack. The new head node takes over
// ownership of the former head.
func (l *List[T]) Push(value T) {
	l.head = l.store().Alloc(node[T]{value: value, next: l.head})
	l.length++
}

// Pop removes the top value and returns it, or Nothing if the list is empty.
func (l *List[T]) Pop() maybe.Maybe[T] {
	if l.head.IsNil() {
		return maybe.Nothing[T]()
	}
	n, freed, err := l.nodes.Release(l.head)
	assertThat(err == nil && freed, "head node %v not exclusively owned: %v", l.head, err)
	l.head = n.next
	l.length--
	return maybe.Just(n.value)
}

// Peek returns the top value without removing it.
func (l *List[T]) Peek() maybe.Maybe[T] {
	if l.head.IsNil() {
		return maybe.Nothing[T]()
	}
	n := l.deref(l.head)
	return maybe.Just(n.value)
}

// PeekMut returns a pointer to the top value, which clients may use to change
// the value in place. The pointer is valid until the value is popped.
func (l *List[T]) PeekMut() maybe.Maybe[*T] {
	if l.head.IsNil() {
		return maybe.Nothing[*T]()
	}
	n := l.deref(l.head)
	return maybe.Just(&n.value)
}

func (l *List[T]) deref(h arena.Handle) *node[T] {
	n, err := l.nodes.Deref(h)
	assertThat(err == nil, "broken link %v: %v", h, err)
	return n
}

// Iter returns a sequence of the values from top to bottom. The sequence may
// be ranged over any number of times.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.head; !h.IsNil(); {
			n := l.deref(h)
			if !yield(n.value) {
				return
			}
			h = n.next
		}
	}
}

// IterMut returns a sequence of pointers to the values from top to bottom,
// through which values may be changed in place. The sequence is single-use:
// ranging over it a second time yields nothing.
func (l *List[T]) IterMut() iter.Seq[*T] {
	used := false
	return func(yield func(*T) bool) {
		if used {
			tracer().Debugf("stack: mutable iteration already consumed")
			return
		}
		used = true
		for h := l.head; !h.IsNil(); {
			n := l.deref(h)
			if !yield(&n.value) {
				return
			}
			h = n.next
		}
	}
}

// Drain returns a consuming sequence: every step pops the top value. Values
// not reached because the caller stopped early remain on the stack.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := l.Pop().Get()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Reverse reverses the list in place by relinking its nodes.
func (l *List[T]) Reverse() {
	var prev arena.Handle
	for h := l.head; !h.IsNil(); {
		n := l.deref(h)
		next := n.next
		n.next = prev
		prev, h = h, next
	}
	l.head = prev
}

// Drop releases all nodes, one at a time.
func (l *List[T]) Drop() {
	count := 0
	for !l.head.IsNil() {
		l.Pop()
		count++
	}
	tracer().Debugf("stack: dropped %d nodes", count)
}

func (l *List[T]) String() string {
	values := fp.Collect(fp.Map(l.Iter(), func(v T) string {
		return fmt.Sprint(v)
	}))
	return "[" + strings.Join(values, " ") + "]"
}
