/*
Package dlist implements a doubly-linked list whose nodes are shared between
their neighbours and the list's head and tail entries, and whose contents are
mutated through a runtime-checked borrow discipline.

Every reference to a node counts as an owner: the list head or the
predecessor's forward link on one side, the list tail or the successor's
backward link on the other. A node is therefore freed exactly when it has been
unlinked from both sides. The list never creates a cycle.

Reading or changing a value while it stays linked goes through borrow guards
(PeekFront, PeekFrontMut, …). At most one exclusive guard, or any number of
shared ones, may be outstanding per node. Any operation which has to adjust
the links of a node currently borrowed fails with arena.ErrBorrowConflict and
leaves the list unchanged.

	l := dlist.New[int]()
	_ = l.PushBack(1)
	_ = l.PushFront(0)
	v, err := l.PopBack()    // Just(1), nil

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dlist

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.dlist'.
func tracer() tracing.Trace {
	return tracing.Select("fp.dlist")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("dlist: "+msg, msgargs...)
		panic(msg)
	}
}
