/*
Package fp is the root of a small family of linked data structures which
differ in how their nodes are owned:

	stack            singly-linked, every node exclusively owned by its predecessor
	persistent/list  singly-linked, immutable nodes shared between list views
	dlist            doubly-linked, shared nodes mutated under a runtime borrow check
	owntree          tree → branch → leaf, children point back to parents via weak handles

All of them keep their nodes in an arena (package arena) and release them
iteratively, never by recursion. This package holds helpers for the sequences
(iter.Seq) the structures produce.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fp

import "iter"

// Collect gathers the elements of a sequence into a slice.
func Collect[T any](seq iter.Seq[T]) []T {
	var s []T
	for x := range seq {
		s = append(s, x)
	}
	return s
}

// Map returns a lazy sequence of f applied to the elements of seq.
func Map[A, B any](seq iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for a := range seq {
			if !yield(f(a)) {
				return
			}
		}
	}
}

// Fold reduces a sequence from the left.
func Fold[T, A any](seq iter.Seq[T], init A, f func(A, T) A) A {
	acc := init
	for x := range seq {
		acc = f(acc, x)
	}
	return acc
}

// Take returns a sequence of at most n elements of seq.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for x := range seq {
			if !yield(x) {
				return
			}
			if i++; i >= n {
				return
			}
		}
	}
}

// Compose returns h = f . g
func Compose[A, B, C any](g func(a A) B, f func(b B) C) func(A) C {
	return func(a A) C {
		return f(g(a))
	}
}
