/*
Package arena implements a generational slot arena for linked structures
which need shared ownership, non-owning back-references and runtime-checked
mutation of shared nodes.

Nodes live in slots of an arena and are addressed by handles. A handle carries
the slot index together with the generation of the slot at allocation time.
Whenever a slot is re-used its generation advances, so a handle outliving its
node is detected instead of silently reading somebody else's data.

Each live slot has an ownership count. Alloc hands out the first owning
reference, Retain adds another one, Release drops one and frees the slot once
the count reaches zero. Weak handles (see Downgrade) do not count; turning them
into an owning handle again is an explicit, fallible Upgrade.

Access to slot contents follows a single-threaded borrow discipline: any number
of shared borrows or exactly one exclusive borrow may be outstanding for a slot.
A conflicting request fails immediately with ErrBorrowConflict. Neither counts
nor borrow flags are atomic; an arena must not be shared between goroutines.

Liveness

Live reports the number of allocated slots. Tests use it to assert that a
sequence of operations followed by a full teardown leaves no unreachable
islands of nodes. An Observer may be attached to get notified about every
allocation and every free.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arena

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.arena'.
func tracer() tracing.Trace {
	return tracing.Select("fp.arena")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("arena: "+msg, msgargs...)
		panic(msg)
	}
}
