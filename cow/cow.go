/*
Package cow implements a borrowed-or-owned value.

Operations which only occasionally have to change their input return a Cow:
if nothing needs to change they hand back a reference to the original
(Borrowed), otherwise they allocate a new value (Owned). Clients which need to
modify a borrowed value call Mutate, which copies on the first write only.

Haskell-style, the type would read

	data Cow a = Borrowed (Ref a) | Owned a
*/
package cow

import "fmt"

// Cow is either Borrowed or Owned. The zero value is an owned zero T.
type Cow[T any] struct {
	borrowed *T
	owned    T
}

// Borrowed references a value owned by somebody else.
func Borrowed[T any](ref *T) Cow[T] {
	if ref == nil {
		return Cow[T]{}
	}
	return Cow[T]{borrowed: ref}
}

// Owned wraps a freshly created value.
func Owned[T any](v T) Cow[T] {
	return Cow[T]{owned: v}
}

// IsOwned is false for borrowed values.
func (c Cow[T]) IsOwned() bool {
	return c.borrowed == nil
}

// Value returns the value, regardless of where it lives.
func (c Cow[T]) Value() T {
	if c.borrowed != nil {
		return *c.borrowed
	}
	return c.owned
}

// Mutate returns a pointer to an owned value, copying a borrowed one first.
// The original of a borrowed value is never written to.
func (c *Cow[T]) Mutate() *T {
	if c.borrowed != nil {
		c.owned = *c.borrowed
		c.borrowed = nil
	}
	return &c.owned
}

func (c Cow[T]) String() string {
	if c.borrowed != nil {
		return fmt.Sprintf("Borrowed(%v)", *c.borrowed)
	}
	return fmt.Sprintf("Owned(%v)", c.owned)
}

// --- Matching --------------------------------------------------------------

// Matcher supports pattern matching in switch statements:
//
//	var ref *T
//	var v T
//	switch m := c.Match(); m {
//	case m.Borrowed(&ref):
//	case m.Owned(&v):
//	}
type Matcher[T any] interface {
	Borrowed(**T) Matcher[T]
	Owned(*T) Matcher[T]
}

func (c Cow[T]) Match() Matcher[T] {
	return matcher[T]{c: &c}
}

type matcher[T any] struct {
	c *Cow[T]
}

func (cm matcher[T]) Borrowed(ref **T) Matcher[T] {
	if cm.c.borrowed != nil {
		*ref = cm.c.borrowed
		return cm
	}
	return nil
}

func (cm matcher[T]) Owned(v *T) Matcher[T] {
	if cm.c.borrowed == nil {
		*v = cm.c.owned
		return cm
	}
	return nil
}
