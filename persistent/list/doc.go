/*
Package list implements an immutable persistent singly-linked list.

A List is a view onto a chain of immutable nodes. Prepend and Tail create new
views in O(1) without copying: the new view shares the existing chain. Many
views may share arbitrarily long common suffixes.

	l0 := list.Empty[int]()
	l1 := l0.Prepend(1)
	l2 := l1.Prepend(2)          // 2 → 1
	l3 := l1.Prepend(3)          // 3 → 1, shares node 1 with l2
	l2.Tail().Head()             // Just(1)

Ownership

Every view owns one reference to its first node, and every node owns one
reference to its successor. A node is freed when the last reference to it
goes away. Dropping a view walks down the chain iteratively and stops at the
first node still referenced by another view.

Views are Go values. Assigning a view to another variable does not create a
new owner; use Clone for that. Each view has to be dropped once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package list

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.list'.
func tracer() tracing.Trace {
	return tracing.Select("fp.list")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("persistent.list: "+msg, msgargs...)
		panic(msg)
	}
}
