package arena

import (
	"errors"
	"fmt"
)

// ErrStaleHandle is returned for nil handles and for handles whose slot has
// been freed (and possibly re-used) in the meantime.
var ErrStaleHandle = errors.New("stale or nil handle")

// ErrBorrowConflict is returned if a borrow of a slot overlaps with an
// exclusive borrow, or if an exclusive borrow overlaps with any other borrow.
var ErrBorrowConflict = errors.New("borrow conflict")

// ErrGone is returned when upgrading a weak handle whose target has been freed.
var ErrGone = errors.New("weak target gone")

// ErrNoTarget is returned when upgrading the zero weak handle.
var ErrNoTarget = errors.New("weak handle has no target")

// Handle addresses a slot of an arena. The zero value is the nil handle.
type Handle struct {
	index uint32
	gen   uint32 // generations start at 1, so gen==0 ⇒ nil handle
}

// IsNil is true for the zero handle.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "⟨nil⟩"
	}
	return fmt.Sprintf("⟨%d/%d⟩", h.index, h.gen)
}

type slot[T any] struct {
	value  T
	gen    uint32
	refs   int
	borrow int // > 0: number of shared borrows; -1: exclusively borrowed
}

// Arena is a store of slots holding values of type T. Slots are allocated
// individually, so pointers to slot contents stay valid while the slot is live.
//
// Arenas are not safe for concurrent use.
type Arena[T any] struct {
	name     string
	slots    []*slot[T]
	free     []uint32 // free list of slot indices
	live     int
	observer Observer
}

// Observer gets notified about allocations and frees of arena slots.
type Observer interface {
	Allocated(arena string, h Handle)
	Freed(arena string, h Handle)
}

//go:generate mockgen -destination=arenamocks/observer.go -package=arenamocks . Observer

// Option is a type to help initializing arenas at creation time.
type Option func(*config)

type config struct {
	observer Observer
	capacity int
}

// WithObserver attaches an observer to an arena.
func WithObserver(obs Observer) Option {
	return func(c *config) {
		c.observer = obs
	}
}

// WithCapacity pre-allocates room for n slots.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New creates an empty arena. The name shows up in traces and is handed to
// observers.
func New[T any](name string, opts ...Option) *Arena[T] {
	var c config
	for _, option := range opts {
		option(&c)
	}
	return &Arena[T]{
		name:     name,
		slots:    make([]*slot[T], 0, c.capacity),
		observer: c.observer,
	}
}

// Name returns the name an arena has been created with.
func (a *Arena[T]) Name() string {
	return a.name
}

// Live returns the number of slots currently allocated.
func (a *Arena[T]) Live() int {
	if a == nil {
		return 0
	}
	return a.live
}

// --- Ownership -------------------------------------------------------------

// Alloc stores value in a fresh slot and returns the first owning handle for it.
func (a *Arena[T]) Alloc(value T) Handle {
	var index uint32
	var s *slot[T]
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
		s = a.slots[index]
	} else {
		index = uint32(len(a.slots))
		s = &slot[T]{}
		a.slots = append(a.slots, s)
	}
	s.gen++
	s.value, s.refs, s.borrow = value, 1, 0
	a.live++
	h := Handle{index: index, gen: s.gen}
	tracer().Debugf("%s: alloc %v, live=%d", a.name, h, a.live)
	if a.observer != nil {
		a.observer.Allocated(a.name, h)
	}
	return h
}

// Retain adds an owning reference to the slot addressed by h.
func (a *Arena[T]) Retain(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	s.refs++
	return nil
}

// Release drops an owning reference. If it was the last one, the slot is freed
// and its former value is returned together with freed=true. Callers use the
// returned value to continue tearing down a chain iteratively.
//
// A slot with an outstanding borrow cannot be freed: Release fails with
// ErrBorrowConflict and leaves the ownership count untouched.
func (a *Arena[T]) Release(h Handle) (value T, freed bool, err error) {
	s, err := a.lookup(h)
	if err != nil {
		return value, false, err
	}
	if s.refs == 1 && s.borrow != 0 {
		return value, false, fmt.Errorf("%w: cannot free borrowed slot %v in %s", ErrBorrowConflict, h, a.name)
	}
	s.refs--
	if s.refs > 0 {
		return value, false, nil
	}
	var zero T
	value, s.value = s.value, zero
	a.free = append(a.free, h.index)
	a.live--
	tracer().Debugf("%s: free %v, live=%d", a.name, h, a.live)
	if a.observer != nil {
		a.observer.Freed(a.name, h)
	}
	return value, true, nil
}

// Refs returns the number of owning references for h, or 0 if h is stale.
func (a *Arena[T]) Refs(h Handle) int {
	s, err := a.lookup(h)
	if err != nil {
		return 0
	}
	return s.refs
}

// Alive is true if h addresses a live slot.
func (a *Arena[T]) Alive(h Handle) bool {
	_, err := a.lookup(h)
	return err == nil
}

// Borrowed is true if h addresses a live slot with an outstanding borrow.
func (a *Arena[T]) Borrowed(h Handle) bool {
	s, err := a.lookup(h)
	return err == nil && s.borrow != 0
}

func (a *Arena[T]) lookup(h Handle) (*slot[T], error) {
	if a == nil || h.IsNil() || int(h.index) >= len(a.slots) {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	s := a.slots[h.index]
	if s.gen != h.gen || s.refs == 0 {
		return nil, fmt.Errorf("%w: %v in %s", ErrStaleHandle, h, a.name)
	}
	return s, nil
}

// --- Weak handles ----------------------------------------------------------

// Weak is a non-owning reference to a slot. The zero value targets nothing.
type Weak struct {
	h Handle
}

// IsNil is true for a weak handle without target.
func (w Weak) IsNil() bool {
	return w.h.IsNil()
}

func (w Weak) String() string {
	return "weak" + w.h.String()
}

// Downgrade creates a weak handle for h. It does not keep the slot alive.
func (a *Arena[T]) Downgrade(h Handle) Weak {
	return Weak{h: h}
}

// Expired is true if the target of w has been freed. The zero weak handle
// counts as expired.
func (a *Arena[T]) Expired(w Weak) bool {
	_, err := a.lookup(w.h)
	return err != nil
}

// Upgrade turns a weak handle into an owning one. The returned handle has to
// be released by the caller. Upgrade fails with ErrGone if the target has been
// freed, and with ErrNoTarget for the zero weak handle.
func (a *Arena[T]) Upgrade(w Weak) (Handle, error) {
	if w.IsNil() {
		return Handle{}, ErrNoTarget
	}
	s, err := a.lookup(w.h)
	if err != nil {
		tracer().Debugf("%s: upgrade of %v failed", a.name, w)
		return Handle{}, fmt.Errorf("%w: %v in %s", ErrGone, w.h, a.name)
	}
	s.refs++
	return w.h, nil
}
