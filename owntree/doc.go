/*
Package owntree implements a tree of three levels, Tree → Branch → Leaf, in
which parents own their children and children point back to their parent
through non-owning weak handles.

Trees, branches and leaves are created from a Forest and handed out as owning
handles. A parent shares ownership of its children with whoever else holds a
handle to them, so a branch can be addressed independently of its tree.
Back-references never keep a parent alive; asking a child for its location
after its parent has gone fails with ErrOwnerGone instead of returning stale
data:

	f := owntree.NewForest()
	oak := f.NewTree("oak")
	b := f.NewBranch("b1")
	_ = oak.AddBranch(b)
	loc, _ := b.Location()    // "oak.b1"
	_ = oak.Drop()
	_, err := b.Location()    // ErrOwnerGone

Whether a vanished owner is a recoverable condition or a program-logic defect
is for the client to decide: by default it is returned as an error, the
OnOwnerGone(Abort) option turns it into a panic.

Teardown is top-down: dropping the last handle of a tree releases its
branches, which release their leaves in turn. The walk is iterative.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package owntree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.owntree'.
func tracer() tracing.Trace {
	return tracing.Select("fp.owntree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("owntree: "+msg, msgargs...)
		panic(msg)
	}
}
