package arena

import "fmt"

// Ref is a shared borrow of a slot's content. It has to be released when
// the caller is done with it; releasing twice is a no-op.
type Ref[T any] struct {
	g *guard[T]
}

// RefMut is an exclusive borrow of a slot's content.
type RefMut[T any] struct {
	g *guard[T]
}

type guard[T any] struct {
	s    *slot[T]
	h    Handle
	done bool
}

// Value returns the borrowed content.
func (r Ref[T]) Value() T {
	assertThat(r.g != nil && !r.g.done, "use of released borrow")
	return r.g.s.value
}

// Handle returns the handle of the borrowed slot.
func (r Ref[T]) Handle() Handle {
	if r.g == nil {
		return Handle{}
	}
	return r.g.h
}

// Release ends the borrow.
func (r Ref[T]) Release() {
	if r.g == nil || r.g.done {
		return
	}
	r.g.done = true
	r.g.s.borrow--
}

// Value returns a pointer to the borrowed content, valid until Release.
func (r RefMut[T]) Value() *T {
	assertThat(r.g != nil && !r.g.done, "use of released borrow")
	return &r.g.s.value
}

// Handle returns the handle of the borrowed slot.
func (r RefMut[T]) Handle() Handle {
	if r.g == nil {
		return Handle{}
	}
	return r.g.h
}

// Release ends the borrow.
func (r RefMut[T]) Release() {
	if r.g == nil || r.g.done {
		return
	}
	r.g.done = true
	r.g.s.borrow = 0
}

// Borrow acquires a shared borrow. It fails with ErrBorrowConflict while the
// slot is exclusively borrowed.
func (a *Arena[T]) Borrow(h Handle) (Ref[T], error) {
	s, err := a.lookup(h)
	if err != nil {
		return Ref[T]{}, err
	}
	if s.borrow < 0 {
		return Ref[T]{}, fmt.Errorf("%w: %v in %s is mutably borrowed", ErrBorrowConflict, h, a.name)
	}
	s.borrow++
	return Ref[T]{g: &guard[T]{s: s, h: h}}, nil
}

// BorrowMut acquires an exclusive borrow. It fails with ErrBorrowConflict while
// any other borrow of the slot is outstanding.
func (a *Arena[T]) BorrowMut(h Handle) (RefMut[T], error) {
	s, err := a.lookup(h)
	if err != nil {
		return RefMut[T]{}, err
	}
	if s.borrow != 0 {
		return RefMut[T]{}, fmt.Errorf("%w: %v in %s is already borrowed", ErrBorrowConflict, h, a.name)
	}
	s.borrow = -1
	return RefMut[T]{g: &guard[T]{s: s, h: h}}, nil
}

// Get returns a copy of a slot's content. Reading is refused while the slot
// is exclusively borrowed.
func (a *Arena[T]) Get(h Handle) (T, error) {
	r, err := a.Borrow(h)
	if err != nil {
		var zero T
		return zero, err
	}
	defer r.Release()
	return r.Value(), nil
}

// Update runs f with exclusive access to a slot's content.
func (a *Arena[T]) Update(h Handle, f func(*T)) error {
	r, err := a.BorrowMut(h)
	if err != nil {
		return err
	}
	defer r.Release()
	f(r.Value())
	return nil
}

// Deref returns a pointer to a slot's content, bypassing the borrow flags.
// It is meant for structures whose nodes are exclusively owned, where the
// borrow discipline is guaranteed by the owner's API already.
func (a *Arena[T]) Deref(h Handle) (*T, error) {
	s, err := a.lookup(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}
