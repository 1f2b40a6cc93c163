package list

import (
	"fmt"
	"iter"
	"strings"

	fp "github.com/valyakuttan/rust-notes"
	"github.com/valyakuttan/rust-notes/arena"
	"github.com/valyakuttan/rust-notes/cow"
	"github.com/valyakuttan/rust-notes/maybe"
)

type node[T any] struct {
	value T
	next  arena.Handle // shared with every view containing the successor
}

// List is a view onto an immutable chain of nodes. The zero value is an empty
// list. Lists derived from one another share a node arena; they must not be
// used concurrently.
type List[T any] struct {
	nodes *arena.Arena[node[T]]
	head  arena.Handle
}

// Empty creates an empty list with a fresh node arena. Options are handed to
// the arena.
func Empty[T any](opts ...arena.Option) List[T] {
	return List[T]{nodes: arena.New[node[T]]("persistent.list", opts...)}
}

// FromSlice creates a list containing values in order, i.e. values[0] becomes
// the head.
func FromSlice[T any](values []T, opts ...arena.Option) List[T] {
	l := Empty[T](opts...)
	for i := len(values) - 1; i >= 0; i-- {
		next := l.Prepend(values[i])
		l.Drop()
		l = next
	}
	return l
}

// Prepend returns a new list with value as its head and l as its tail.
// l is not modified.
func (l List[T]) Prepend(value T) List[T] {
	if l.nodes == nil {
		l.nodes = arena.New[node[T]]("persistent.list")
	}
	if !l.head.IsNil() {
		err := l.nodes.Retain(l.head) // the new node co-owns the old head
		assertThat(err == nil, "prepend to dropped list: %v", err)
	}
	h := l.nodes.Alloc(node[T]{value: value, next: l.head})
	return List[T]{nodes: l.nodes, head: h}
}

// Tail returns the list without its first element. The tail of an empty list
// is empty.
func (l List[T]) Tail() List[T] {
	if l.head.IsNil() {
		return List[T]{nodes: l.nodes}
	}
	n := l.node(l.head)
	if !n.next.IsNil() {
		err := l.nodes.Retain(n.next)
		assertThat(err == nil, "broken link %v: %v", n.next, err)
	}
	return List[T]{nodes: l.nodes, head: n.next}
}

// Head returns the first element, or Nothing for an empty list.
func (l List[T]) Head() maybe.Maybe[T] {
	if l.head.IsNil() {
		return maybe.Nothing[T]()
	}
	return maybe.Just(l.node(l.head).value)
}

// Clone returns a new view of the same list, which has to be dropped
// independently of l.
func (l List[T]) Clone() List[T] {
	if !l.head.IsNil() {
		err := l.nodes.Retain(l.head)
		assertThat(err == nil, "clone of dropped list: %v", err)
	}
	return l
}

// IsEmpty is true for a list without elements.
func (l List[T]) IsEmpty() bool {
	return l.head.IsNil()
}

// Len counts the elements of l in O(n).
func (l List[T]) Len() int {
	return fp.Fold(l.Iter(), 0, func(n int, _ T) int {
		return n + 1
	})
}

// Live returns the number of nodes allocated for l and every list sharing its
// arena.
func (l List[T]) Live() int {
	return l.nodes.Live()
}

// Iter returns a sequence of the elements from head to end.
func (l List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.head; !h.IsNil(); {
			n := l.node(h)
			if !yield(n.value) {
				return
			}
			h = n.next
		}
	}
}

// SharesTail is true if l and other contain at least one identical node, i.e.
// they share a common suffix in memory (not merely equal elements).
func (l List[T]) SharesTail(other List[T]) bool {
	if l.nodes != other.nodes || l.IsEmpty() || other.IsEmpty() {
		return false
	}
	seen := make(map[arena.Handle]struct{})
	for h := other.head; !h.IsNil(); h = other.node(h).next {
		seen[h] = struct{}{}
	}
	for h := l.head; !h.IsNil(); h = l.node(h).next {
		if _, ok := seen[h]; ok {
			return true
		}
	}
	return false
}

// Drop releases this view. Nodes are freed front to back for as long as no
// other view references them; the first node still in use ends the walk.
// After Drop, l is empty.
func (l *List[T]) Drop() {
	h := l.head
	l.head = arena.Handle{}
	count := 0
	for !h.IsNil() {
		n, freed, err := l.nodes.Release(h)
		assertThat(err == nil, "drop of dropped list: %v", err)
		if !freed {
			break // still shared by a sibling view
		}
		count++
		h = n.next
	}
	tracer().Debugf("persistent.list: drop freed %d nodes", count)
}

func (l List[T]) node(h arena.Handle) node[T] {
	n, err := l.nodes.Get(h)
	assertThat(err == nil, "broken link %v: %v", h, err)
	return n
}

func (l List[T]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	first := true
	for v := range l.Iter() {
		if !first {
			b.WriteString(" → ")
		}
		first = false
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteByte(')')
	return b.String()
}

// --- Copy on actual mutation -----------------------------------------------

// Map applies f to every element. If f leaves all elements unchanged, the
// result is borrowed: it refers to the same owner as l and must not be
// dropped on its own. Otherwise the result owns a new view in which only the
// prefix up to the last changed element is copied; the untouched suffix is
// shared with l. An owned result has to be dropped by the caller.
func Map[T comparable](l List[T], f func(T) T) cow.Cow[List[T]] {
	var values []T
	var handles []arena.Handle
	last := -1
	for h := l.head; !h.IsNil(); {
		n := l.node(h)
		v := f(n.value)
		if v != n.value {
			last = len(values)
		}
		values = append(values, v)
		handles = append(handles, h)
		h = n.next
	}
	if last < 0 {
		tracer().Debugf("persistent.list: map changed nothing")
		return cow.Borrowed(&l)
	}
	var suffix List[T]
	if last+1 < len(handles) {
		suffix = List[T]{nodes: l.nodes, head: handles[last+1]}.Clone()
	} else {
		suffix = List[T]{nodes: l.nodes}
	}
	for i := last; i >= 0; i-- {
		next := suffix.Prepend(values[i])
		suffix.Drop()
		suffix = next
	}
	tracer().Debugf("persistent.list: map copied %d of %d nodes", last+1, len(values))
	return cow.Owned(suffix)
}
